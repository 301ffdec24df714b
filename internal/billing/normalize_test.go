package billing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billpay/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        map[string]any
		wantID     string
		wantAmount string
		wantStatus models.BillStatus
		wantDue    string
	}{
		{
			name:       "well formed backend row",
			raw:        map[string]any{"bill_id": json.Number("7"), "user_id": json.Number("2"), "amount": json.Number("120.50"), "status": "pending", "due_date": "2025-12-15"},
			wantID:     "7",
			wantAmount: "120.5",
			wantStatus: models.BillStatusPending,
			wantDue:    "2025-12-15",
		},
		{
			name:       "paid status is case-insensitive",
			raw:        map[string]any{"id": "b-1", "amount": 50.0, "status": "PAID"},
			wantID:     "b-1",
			wantAmount: "50",
			wantStatus: models.BillStatusPaid,
		},
		{
			name:       "textual amount",
			raw:        map[string]any{"bill_id": 3, "amount": " 75.25 ", "status": "Paid"},
			wantID:     "3",
			wantAmount: "75.25",
			wantStatus: models.BillStatusPaid,
		},
		{
			name:       "non-numeric amount",
			raw:        map[string]any{"amount": "abc"},
			wantAmount: "0",
			wantStatus: models.BillStatusPending,
		},
		{
			name:       "missing everything",
			raw:        map[string]any{},
			wantAmount: "0",
			wantStatus: models.BillStatusPending,
		},
		{
			name:       "negative amount",
			raw:        map[string]any{"amount": -10.0, "status": "pending"},
			wantAmount: "0",
			wantStatus: models.BillStatusPending,
		},
		{
			name:       "NaN amount",
			raw:        map[string]any{"amount": math.NaN()},
			wantAmount: "0",
			wantStatus: models.BillStatusPending,
		},
		{
			name:       "unknown status string",
			raw:        map[string]any{"amount": json.Number("10"), "status": "completed"},
			wantAmount: "10",
			wantStatus: models.BillStatusPending,
		},
		{
			name:       "non-string status",
			raw:        map[string]any{"amount": json.Number("10"), "status": true},
			wantAmount: "10",
			wantStatus: models.BillStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			assert.Equal(t, tt.wantID, got.ID)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantDue, got.DueDate)
		})
	}
}

func TestNormalizeAll_BadRecordDoesNotAbortBatch(t *testing.T) {
	raws := []map[string]any{
		{"bill_id": 1, "amount": 100.0, "status": "pending"},
		{"bill_id": 2, "amount": map[string]any{"nested": true}, "status": 42},
		{"bill_id": 3, "amount": "12.5", "status": "Paid"},
	}

	bills := NormalizeAll(raws)
	require.Len(t, bills, 3)
	assert.True(t, bills[1].Amount.IsZero())
	assert.Equal(t, models.BillStatusPending, bills[1].Status)
	assert.Equal(t, "3", bills[2].ID)
}

func TestNormalize_ResolvesUtility(t *testing.T) {
	b := Normalize(map[string]any{"bill_id": 1, "utility_name": "Electricity", "provider_name": "XYZ Power Co."})
	assert.Equal(t, models.Electricity, b.Utility)
	assert.Equal(t, "XYZ Power Co.", b.Provider)
}

func TestNormalizeReceipt(t *testing.T) {
	r := NormalizeReceipt(map[string]any{
		"payment_id":     json.Number("11"),
		"bill_id":        json.Number("2"),
		"amount":         json.Number("75.00"),
		"payment_method": "credit_card",
		"status":         "Success",
	})
	assert.Equal(t, "11", r.PaymentID)
	assert.Equal(t, "2", r.BillID)
	assert.True(t, r.Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "credit_card", r.Method)
	assert.Equal(t, models.ReceiptStatusSuccess, r.Status)

	assert.Equal(t, models.ReceiptStatusSuccess, NormalizeReceipt(map[string]any{"status": "completed"}).Status)
	assert.Equal(t, models.ReceiptStatusFailed, NormalizeReceipt(map[string]any{"status": "declined"}).Status)
	assert.Equal(t, models.ReceiptStatusFailed, NormalizeReceipt(map[string]any{}).Status)
}

func TestNormalizeRemindersAndUser(t *testing.T) {
	rs := NormalizeReminders([]map[string]any{
		{"reminder_id": json.Number("1"), "message": "Pay electricity bill by 2025-12-15", "reminder_date": "2025-12-14"},
	})
	require.Len(t, rs, 1)
	assert.Equal(t, models.Reminder{ID: "1", Message: "Pay electricity bill by 2025-12-15", Date: "2025-12-14"}, rs[0])

	u := NormalizeUser(map[string]any{"user_id": json.Number("1"), "username": "john_doe", "email": "john@example.com"})
	assert.Equal(t, "john_doe", u.DisplayName())
	assert.Equal(t, "1", u.ID)
}
