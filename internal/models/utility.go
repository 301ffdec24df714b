package models

// UtilityCategory is one of the fixed utility kinds a bill can be matched to.
type UtilityCategory struct {
	// ID is the stable identifier (1-3 for known categories, 0 for Unknown).
	ID int

	// Name is the display name (e.g., "Electricity").
	Name string

	// Icon is a single glyph shown next to the name.
	Icon string

	// Token is the lower-case substring used when matching free-form bill fields.
	Token string
}

// IsUnknown reports whether the category is the Unknown placeholder.
func (c UtilityCategory) IsUnknown() bool {
	return c.ID == UnknownUtility.ID
}

var (
	Electricity = UtilityCategory{ID: 1, Name: "Electricity", Icon: "⚡", Token: "electricity"}
	Water       = UtilityCategory{ID: 2, Name: "Water", Icon: "💧", Token: "water"}
	Gas         = UtilityCategory{ID: 3, Name: "Gas", Icon: "🔥", Token: "gas"}

	// UnknownUtility is assigned to bills no category token matched.
	UnknownUtility = UtilityCategory{ID: 0, Name: "Unknown", Icon: "❓"}
)

// utilities is in declaration order, which is also the match priority.
var utilities = [...]UtilityCategory{Electricity, Water, Gas}

// Utilities returns the fixed categories in declaration order.
// The returned slice is a fresh copy; callers may not mutate the package set.
func Utilities() []UtilityCategory {
	out := make([]UtilityCategory, len(utilities))
	copy(out, utilities[:])
	return out
}
