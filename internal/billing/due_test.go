package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billpay/internal/models"
)

func bill(id, amount string, status models.BillStatus) models.Bill {
	return models.Bill{ID: id, Amount: decimal.RequireFromString(amount), Status: status}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		bills       []models.Bill
		wantTotal   string
		wantPending []string
	}{
		{
			name: "pending and paid",
			bills: []models.Bill{
				bill("1", "100", models.BillStatusPending),
				bill("2", "50", models.BillStatusPaid),
			},
			wantTotal:   "100",
			wantPending: []string{"1"},
		},
		{
			name:      "empty list",
			wantTotal: "0",
		},
		{
			name: "all paid contributes nothing",
			bills: []models.Bill{
				bill("1", "999.99", models.BillStatusPaid),
				bill("2", "0.01", models.BillStatusPaid),
			},
			wantTotal: "0",
		},
		{
			name: "order is preserved",
			bills: []models.Bill{
				bill("3", "0.10", models.BillStatusPending),
				bill("1", "0.20", models.BillStatusPending),
				bill("2", "5", models.BillStatusPaid),
			},
			wantTotal:   "0.30",
			wantPending: []string{"3", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.bills)
			assert.True(t, s.TotalDue.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s, want %s", s.TotalDue, tt.wantTotal)
			var ids []string
			for _, b := range s.Pending {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantPending, ids)
		})
	}
}

func TestSummarize_FromRawScenario(t *testing.T) {
	bills := NormalizeAll([]map[string]any{
		{"id": 1, "amount": 100.0, "status": "pending"},
		{"id": 2, "amount": 50.0, "status": "Paid"},
	})

	s := Summarize(bills)
	require.Len(t, s.Pending, 1)
	assert.Equal(t, "1", s.Pending[0].ID)
	assert.True(t, s.TotalDue.Equal(decimal.NewFromInt(100)))
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		due      string
		wantDays int
		wantOK   bool
		wantKind DueKind
		wantText string
	}{
		{"2026-10-18", 0, true, DueToday, "Due today"},
		{"2026-10-17", -1, true, DueOverdue, "Overdue"},
		{"2026-10-01", -17, true, DueOverdue, "Overdue"},
		{"2026-10-19", 1, true, DueUpcoming, "Due in 1 day"},
		{"2026-10-20", 2, true, DueUpcoming, "Due in 2 days"},
		{"2026-10-25T14:00:00Z", 7, true, DueUpcoming, "Due in 7 days"},
		{"2026-10-18 20:00:00", 1, true, DueUpcoming, "Due in 1 day"},
		{"", 0, false, DueNone, "No due date"},
		{"next tuesday", 0, false, DueNone, "No due date"},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			days, ok := DaysUntilDue(tt.due, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDays, days)

			label := DescribeDue(days, ok)
			assert.Equal(t, tt.wantKind, label.Kind)
			assert.Equal(t, tt.wantText, label.Text)
		})
	}
}

func TestDueLabelFor_TodayAndYesterday(t *testing.T) {
	now := time.Now()
	today := now.Format(time.DateOnly)
	yesterday := now.AddDate(0, 0, -1).Format(time.DateOnly)

	assert.Equal(t, DueToday, DueLabelFor(models.Bill{DueDate: today}, now).Kind)
	assert.Equal(t, DueOverdue, DueLabelFor(models.Bill{DueDate: yesterday}, now).Kind)
	assert.Equal(t, "overdue", DueOverdue.String())
}
