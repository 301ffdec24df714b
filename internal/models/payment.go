package models

import "github.com/shopspring/decimal"

// ReceiptStatus is the outcome the backend reported for one paid bill.
type ReceiptStatus string

const (
	ReceiptStatusSuccess ReceiptStatus = "Success"
	ReceiptStatusFailed  ReceiptStatus = "Failed"
)

// Receipt is the backend's confirmation of one bill payment.
type Receipt struct {
	// PaymentID is the backend's payment identifier.
	PaymentID string

	// BillID references the paid Bill.
	BillID string

	// Amount is the amount paid.
	Amount decimal.Decimal

	// Method is the payment method (e.g., "credit_card").
	Method string

	Status ReceiptStatus
}

// Confirmation is what the post-payment view shows after a batch payment.
type Confirmation struct {
	Receipts  []Receipt
	TotalPaid decimal.Decimal
}
