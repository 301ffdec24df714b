package billing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/models"
)

var (
	ErrBillNotFound   = errors.New("bill not found")
	ErrAlreadyPaid    = errors.New("bill already paid")
	ErrAmountMismatch = errors.New("amount does not match bill")
	ErrBatchRejected  = errors.New("batch payment rejected")
	ErrNothingToPay   = errors.New("no pending bills to pay")
)

// ViewState is everything the dashboard shows for one session.
// TotalDue always equals the sum of the bills that are still Pending.
type ViewState struct {
	User      models.User
	Bills     []models.Bill
	TotalDue  decimal.Decimal
	Reminders []models.Reminder

	// Feedback is the current transient message, if any. Only set on snapshots.
	Feedback *models.Feedback
}

// SetBills replaces the bill list and recomputes the total due.
func (v *ViewState) SetBills(bills []models.Bill) {
	v.Bills = bills
	v.recompute()
}

// Summary returns the pending subset and total of the current bills.
func (v ViewState) Summary() Summary {
	return Summarize(v.Bills)
}

// PendingIDs returns the IDs of bills that are still Pending, in display order.
func (v ViewState) PendingIDs() []string {
	var ids []string
	for _, b := range v.Bills {
		if b.IsPending() {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Bill looks a bill up by ID.
func (v ViewState) Bill(id string) (models.Bill, bool) {
	i := v.index(id)
	if i < 0 {
		return models.Bill{}, false
	}
	return v.Bills[i], true
}

// MarkPaid flips one pending bill to Paid in place and recomputes the total due.
// It is only called after the backend confirmed the payment.
func (v *ViewState) MarkPaid(billID string) error {
	i := v.index(billID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if !v.Bills[i].IsPending() {
		return fmt.Errorf("%w: %s", ErrAlreadyPaid, billID)
	}
	v.Bills[i].Status = models.BillStatusPaid
	v.recompute()
	return nil
}

// ApplyReceipts marks every receipted bill Paid. Either all receipts apply or none do:
// a receipt for a bill that is not in the view leaves the state untouched.
// Receipts for bills that are already Paid are ignored.
func (v *ViewState) ApplyReceipts(receipts []models.Receipt) error {
	for _, r := range receipts {
		if v.index(r.BillID) < 0 {
			return fmt.Errorf("%w: %s", ErrBillNotFound, r.BillID)
		}
	}
	for _, r := range receipts {
		v.Bills[v.index(r.BillID)].Status = models.BillStatusPaid
	}
	v.recompute()
	return nil
}

// Reset drops everything, as on logout.
func (v *ViewState) Reset() {
	*v = ViewState{TotalDue: decimal.Zero}
}

// Clone returns a deep copy safe to hand to renderers.
func (v *ViewState) Clone() ViewState {
	out := *v
	out.Bills = slices.Clone(v.Bills)
	out.Reminders = slices.Clone(v.Reminders)
	if v.Feedback != nil {
		fb := *v.Feedback
		out.Feedback = &fb
	}
	return out
}

func (v ViewState) index(id string) int {
	return slices.IndexFunc(v.Bills, func(b models.Bill) bool { return b.ID == id })
}

func (v *ViewState) recompute() {
	total := Summarize(v.Bills).TotalDue
	if total.IsNegative() {
		total = decimal.Zero
	}
	v.TotalDue = total
}

// Confirm builds the confirmation for a batch payment.
// The batch is all-or-nothing: an empty receipt list or any Failed receipt rejects it.
func Confirm(receipts []models.Receipt) (models.Confirmation, error) {
	if len(receipts) == 0 {
		return models.Confirmation{}, fmt.Errorf("%w: no receipts returned", ErrBatchRejected)
	}
	total := decimal.Zero
	for _, r := range receipts {
		if r.Status != models.ReceiptStatusSuccess {
			return models.Confirmation{}, fmt.Errorf("%w: bill %s status %s", ErrBatchRejected, r.BillID, r.Status)
		}
		total = total.Add(r.Amount)
	}
	return models.Confirmation{
		Receipts:  slices.Clone(receipts),
		TotalPaid: total,
	}, nil
}
