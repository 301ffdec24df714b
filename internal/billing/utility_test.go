package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/billpay/internal/models"
)

func TestMatchUtility(t *testing.T) {
	tests := []struct {
		name string
		bill models.Bill
		want models.UtilityCategory
	}{
		{"explicit type", models.Bill{UtilityType: "electricity"}, models.Electricity},
		{"case-insensitive", models.Bill{UtilityType: "WATER"}, models.Water},
		{"substring of provider", models.Bill{Provider: "DEF Gas Ltd."}, models.Gas},
		{"generic type field", models.Bill{Type: "Gas"}, models.Gas},
		{"utility type wins over provider", models.Bill{UtilityType: "Water", Provider: "City Gas"}, models.Water},
		{"provider wins over type", models.Bill{Provider: "ABC Water Works", Type: "gas"}, models.Water},
		{"first non-empty value only", models.Bill{UtilityType: "Internet", Provider: "XYZ Power electricity"}, models.UnknownUtility},
		{"declaration order breaks ties", models.Bill{UtilityType: "gas-fired electricity"}, models.Electricity},
		{"water before gas", models.Bill{UtilityType: "gas and water"}, models.Water},
		{"nothing to match", models.Bill{}, models.UnknownUtility},
		{"whitespace only", models.Bill{UtilityType: "   ", Type: "water"}, models.Water},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchUtility(tt.bill))
		})
	}
}

func TestMatchUtility_Deterministic(t *testing.T) {
	b := models.Bill{Provider: "XYZ Power & Gas (electricity)"}
	first := MatchUtility(b)
	for i := 0; i < 100; i++ {
		if got := MatchUtility(b); got != first {
			t.Fatalf("call %d resolved %v, first call resolved %v", i, got, first)
		}
	}
	assert.Equal(t, models.Electricity, first)
}

func TestUtilitiesIsACopy(t *testing.T) {
	u := models.Utilities()
	u[0].Token = "tampered"
	assert.Equal(t, "electricity", models.Utilities()[0].Token)
}
