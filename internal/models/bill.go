package models

import "github.com/shopspring/decimal"

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPaid    BillStatus = "Paid"
)

// Bill represents one billable obligation owned by a user.
// Bills are created by the backend and fetched read-only; the only local mutation is the
// Pending to Paid transition after a confirmed payment.
type Bill struct {
	// ID is the unique bill identifier.
	ID string

	// UserID is the owning user.
	UserID string

	// Utility is the category resolved by matching, or UnknownUtility.
	Utility UtilityCategory

	// Amount is the amount due. Never negative.
	Amount decimal.Decimal

	// DueDate is kept exactly as the backend sent it. Empty means no due date.
	DueDate string

	// Status is Pending unless the backend explicitly said Paid.
	Status BillStatus

	// Provider is the optional provider display name (e.g., "XYZ Power Co.").
	Provider string

	// UtilityType and Type are the raw free-form fields the utility matcher reads.
	UtilityType string
	Type        string
}

// IsPending reports whether the bill still counts towards the amount due.
func (b Bill) IsPending() bool {
	return b.Status != BillStatusPaid
}
