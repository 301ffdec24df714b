package models

// FeedbackKind classifies a transient user-facing message.
type FeedbackKind string

const (
	FeedbackInfo    FeedbackKind = "info"
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is a transient message shown after a user action.
type Feedback struct {
	// ID identifies this message instance. Clearing is keyed to it.
	ID   string
	Kind FeedbackKind
	Text string
}
