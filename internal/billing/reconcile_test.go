package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billpay/internal/models"
)

func scenarioState() ViewState {
	var v ViewState
	v.SetBills([]models.Bill{
		bill("1", "100", models.BillStatusPending),
		bill("2", "50", models.BillStatusPaid),
	})
	return v
}

func TestMarkPaid(t *testing.T) {
	v := scenarioState()
	require.True(t, v.TotalDue.Equal(decimal.NewFromInt(100)))

	require.NoError(t, v.MarkPaid("1"))

	b, ok := v.Bill("1")
	require.True(t, ok)
	assert.Equal(t, models.BillStatusPaid, b.Status)
	assert.True(t, v.TotalDue.IsZero(), "total = %s", v.TotalDue)
	assert.Empty(t, v.PendingIDs())
}

func TestViewState_ReadOnReturnedValue(t *testing.T) {
	b, ok := scenarioState().Bill("2")
	require.True(t, ok)
	assert.Equal(t, models.BillStatusPaid, b.Status)

	assert.Equal(t, []string{"1"}, scenarioState().PendingIDs())
	assert.Len(t, scenarioState().Summary().Pending, 1)
}

func TestMarkPaid_DecreasesByBillAmount(t *testing.T) {
	var v ViewState
	v.SetBills([]models.Bill{
		bill("a", "120.50", models.BillStatusPending),
		bill("b", "75.00", models.BillStatusPending),
		bill("c", "60.00", models.BillStatusPending),
	})
	before := v.TotalDue

	require.NoError(t, v.MarkPaid("b"))

	assert.True(t, before.Sub(v.TotalDue).Equal(decimal.RequireFromString("75")))
	assert.Equal(t, []string{"a", "c"}, v.PendingIDs())
}

func TestMarkPaid_Errors(t *testing.T) {
	v := scenarioState()
	before := v.Clone()

	err := v.MarkPaid("2")
	assert.True(t, errors.Is(err, ErrAlreadyPaid))

	err = v.MarkPaid("404")
	assert.True(t, errors.Is(err, ErrBillNotFound))

	assert.Equal(t, before, v)
}

func TestApplyReceipts_AllOrNothing(t *testing.T) {
	v := scenarioState()
	before := v.Clone()

	err := v.ApplyReceipts([]models.Receipt{
		{BillID: "1", Status: models.ReceiptStatusSuccess},
		{BillID: "missing", Status: models.ReceiptStatusSuccess},
	})
	require.ErrorIs(t, err, ErrBillNotFound)
	assert.Equal(t, before, v)

	require.NoError(t, v.ApplyReceipts([]models.Receipt{{BillID: "1", Status: models.ReceiptStatusSuccess}}))
	assert.True(t, v.TotalDue.IsZero())
}

func TestConfirm(t *testing.T) {
	t.Run("sums successful receipts", func(t *testing.T) {
		c, err := Confirm([]models.Receipt{
			{PaymentID: "p1", BillID: "1", Amount: decimal.RequireFromString("120.50"), Status: models.ReceiptStatusSuccess},
			{PaymentID: "p2", BillID: "2", Amount: decimal.RequireFromString("0.25"), Status: models.ReceiptStatusSuccess},
		})
		require.NoError(t, err)
		assert.True(t, c.TotalPaid.Equal(decimal.RequireFromString("120.75")))
		assert.Len(t, c.Receipts, 2)
	})

	t.Run("any failed receipt rejects the batch", func(t *testing.T) {
		_, err := Confirm([]models.Receipt{
			{BillID: "1", Amount: decimal.NewFromInt(1), Status: models.ReceiptStatusSuccess},
			{BillID: "2", Amount: decimal.NewFromInt(1), Status: models.ReceiptStatusFailed},
		})
		assert.ErrorIs(t, err, ErrBatchRejected)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		_, err := Confirm(nil)
		assert.ErrorIs(t, err, ErrBatchRejected)
	})
}

func TestReset(t *testing.T) {
	v := scenarioState()
	v.User = models.User{Username: "john_doe"}
	v.Reset()
	assert.Empty(t, v.Bills)
	assert.True(t, v.TotalDue.IsZero())
	assert.Equal(t, "User", v.User.DisplayName())
}
