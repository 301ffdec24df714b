package billing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/models"
)

// Summary is the pending subset of a bill list and what it adds up to.
type Summary struct {
	Pending  []models.Bill
	TotalDue decimal.Decimal
}

// Summarize filters pending bills, preserving input order, and sums their amounts.
// Paid bills never contribute to TotalDue, whatever their amount.
func Summarize(bills []models.Bill) Summary {
	s := Summary{TotalDue: decimal.Zero}
	for _, b := range bills {
		if !b.IsPending() {
			continue
		}
		s.Pending = append(s.Pending, b)
		s.TotalDue = s.TotalDue.Add(b.Amount)
	}
	return s
}

// dueDateLayouts are tried in order. Date-only values are taken as midnight in the
// caller's location.
var dueDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
}

// ParseDueDate parses a backend due date.
func ParseDueDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntilDue returns ceil((due - now) / 24h). ok is false when there is no usable due date.
func DaysUntilDue(due string, now time.Time) (days int, ok bool) {
	t, ok := ParseDueDate(due, now.Location())
	if !ok {
		return 0, false
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), true
}

// DueKind buckets a bill by how soon it is due.
type DueKind int

const (
	DueNone DueKind = iota
	DueUpcoming
	DueToday
	DueOverdue
)

func (k DueKind) String() string {
	switch k {
	case DueUpcoming:
		return "upcoming"
	case DueToday:
		return "today"
	case DueOverdue:
		return "overdue"
	default:
		return "none"
	}
}

// DueLabel is the display form of DaysUntilDue.
type DueLabel struct {
	Kind DueKind
	Days int
	Text string
}

// DescribeDue renders a days-until-due value. Past due dates are always "Overdue".
func DescribeDue(days int, ok bool) DueLabel {
	switch {
	case !ok:
		return DueLabel{Kind: DueNone, Text: "No due date"}
	case days > 1:
		return DueLabel{Kind: DueUpcoming, Days: days, Text: fmt.Sprintf("Due in %d days", days)}
	case days == 1:
		return DueLabel{Kind: DueUpcoming, Days: days, Text: "Due in 1 day"}
	case days == 0:
		return DueLabel{Kind: DueToday, Text: "Due today"}
	default:
		return DueLabel{Kind: DueOverdue, Days: days, Text: "Overdue"}
	}
}

// DueLabelFor is DescribeDue(DaysUntilDue(b.DueDate, now)).
func DueLabelFor(b models.Bill, now time.Time) DueLabel {
	return DescribeDue(DaysUntilDue(b.DueDate, now))
}
