package billing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/models"
)

// Normalize converts one raw bill record of unknown shape into a Bill.
// It never fails: missing or malformed fields fall back to safe defaults
// (zero amount, Pending status, no due date).
func Normalize(raw map[string]any) models.Bill {
	b := models.Bill{
		ID:          firstString(raw, "bill_id", "id"),
		UserID:      firstString(raw, "user_id"),
		Amount:      parseAmount(raw["amount"]),
		DueDate:     firstString(raw, "due_date"),
		Status:      parseStatus(raw["status"]),
		Provider:    firstString(raw, "provider_name", "provider"),
		UtilityType: firstString(raw, "utility_type", "utility_name"),
		Type:        firstString(raw, "type"),
	}
	b.Utility = MatchUtility(b)
	return b
}

// NormalizeAll normalizes a batch. The result always has one bill per input record.
func NormalizeAll(raws []map[string]any) []models.Bill {
	bills := make([]models.Bill, 0, len(raws))
	for _, raw := range raws {
		bills = append(bills, Normalize(raw))
	}
	return bills
}

// parseAmount returns zero for anything that is not a finite, non-negative number.
func parseAmount(v any) decimal.Decimal {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(v)
	case float32:
		return parseAmount(float64(v))
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseStatus(v any) models.BillStatus {
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "paid") {
		return models.BillStatusPaid
	}
	return models.BillStatusPending
}

// firstString returns the first non-empty value among keys, rendered as a string.
func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// NormalizeReceipt converts a raw receipt. Only an explicit "success" or "completed"
// status counts as Success; anything else is Failed.
func NormalizeReceipt(raw map[string]any) models.Receipt {
	status := models.ReceiptStatusFailed
	switch strings.ToLower(firstString(raw, "status")) {
	case "success", "completed":
		status = models.ReceiptStatusSuccess
	}
	return models.Receipt{
		PaymentID: firstString(raw, "payment_id", "id"),
		BillID:    firstString(raw, "bill_id"),
		Amount:    parseAmount(raw["amount"]),
		Method:    firstString(raw, "payment_method", "method"),
		Status:    status,
	}
}

// NormalizeReceipts converts a batch of raw receipts.
func NormalizeReceipts(raws []map[string]any) []models.Receipt {
	out := make([]models.Receipt, 0, len(raws))
	for _, raw := range raws {
		out = append(out, NormalizeReceipt(raw))
	}
	return out
}

// NormalizeReminders converts raw reminders. Reminders are informational only.
func NormalizeReminders(raws []map[string]any) []models.Reminder {
	out := make([]models.Reminder, 0, len(raws))
	for _, raw := range raws {
		out = append(out, models.Reminder{
			ID:      firstString(raw, "reminder_id", "id"),
			Message: firstString(raw, "message"),
			Date:    firstString(raw, "reminder_date", "date"),
		})
	}
	return out
}

// NormalizeUser converts a raw user record.
func NormalizeUser(raw map[string]any) models.User {
	return models.User{
		ID:       firstString(raw, "user_id", "id"),
		Username: firstString(raw, "username"),
		Email:    firstString(raw, "email"),
		Phone:    firstString(raw, "phone_number"),
	}
}

// Field returns the first non-empty value among keys as a string. Numbers are rendered
// without exponent; other types are ignored.
func Field(raw map[string]any, keys ...string) string {
	return firstString(raw, keys...)
}
