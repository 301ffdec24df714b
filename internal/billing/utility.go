package billing

import (
	"strings"

	"github.com/mmynk/billpay/internal/models"
)

// matchField reads one free-form bill field the matcher may use.
type matchField func(models.Bill) string

// matchFields is evaluated in order; the first non-empty value is the match key.
// Backends disagree on which field carries the utility name, hence the fallbacks.
var matchFields = []matchField{
	func(b models.Bill) string { return b.UtilityType },
	func(b models.Bill) string { return b.Provider },
	func(b models.Bill) string { return b.Type },
}

// MatchUtility resolves the bill to exactly one category, or models.UnknownUtility.
// Categories are tried in declaration order (Electricity, Water, Gas); first match wins.
func MatchUtility(b models.Bill) models.UtilityCategory {
	key := strings.ToLower(matchKey(b))
	if key == "" {
		return models.UnknownUtility
	}
	for _, c := range models.Utilities() {
		if strings.Contains(key, c.Token) {
			return c
		}
	}
	return models.UnknownUtility
}

func matchKey(b models.Bill) string {
	for _, get := range matchFields {
		if v := strings.TrimSpace(get(b)); v != "" {
			return v
		}
	}
	return ""
}
