package models

// Reminder is an informational note attached to a user.
type Reminder struct {
	ID      string
	Message string
	// Date is the target date as sent by the backend.
	Date string
}
