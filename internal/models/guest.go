// internal/models/guest.go
package models

import "strings"

// BudgetLevel is the guest-side price category.
type BudgetLevel string

const (
	BudgetLow  BudgetLevel = "low"
	BudgetMid  BudgetLevel = "mid"
	BudgetHigh BudgetLevel = "high"
)

// Tier maps the budget onto the therapist price-tier ordering. An empty level
// resolves to mid; an unrecognised level is unknown.
func (b BudgetLevel) Tier() PriceTier {
	switch BudgetLevel(strings.ToLower(strings.TrimSpace(string(b)))) {
	case "":
		return PriceTierStandard
	case BudgetLow:
		return PriceTierValue
	case BudgetMid:
		return PriceTierStandard
	case BudgetHigh:
		return PriceTierPremium
	}
	return PriceTierUnknown
}

// TagWeights maps a tag to a preference strength in [0,1]. A missing key and an
// explicit zero are treated the same.
type TagWeights map[string]float64

// Weight returns the strength for tag, or 0 when absent.
func (w TagWeights) Weight(tag string) float64 {
	if w == nil {
		return 0
	}
	return w[tag]
}

// GuestPreference is the scorer's view of a guest.
type GuestPreference struct {
	BudgetLevel BudgetLevel `json:"budgetLevel,omitempty"`
	Mood        TagWeights  `json:"mood,omitempty"`
	Talk        TagWeights  `json:"talk,omitempty"`
	Style       TagWeights  `json:"style,omitempty"`
	Look        TagWeights  `json:"look,omitempty"`
}

// GuestIntent is the search request as the guest expressed it.
type GuestIntent struct {
	Area         string   `json:"area,omitempty"`
	Date         string   `json:"date,omitempty"`
	TimeFrom     string   `json:"timeFrom,omitempty"`
	TimeTo       string   `json:"timeTo,omitempty"`
	PriceMin     int      `json:"priceMin,omitempty"`
	PriceMax     int      `json:"priceMax,omitempty"`
	ShopID       string   `json:"shopId,omitempty"`
	LookTags     []string `json:"lookTags,omitempty"`
	TalkPref     string   `json:"talkPref,omitempty"`
	PressurePref string   `json:"pressurePref,omitempty"`
	MoodTags     []string `json:"moodTags,omitempty"`
	FreeText     string   `json:"freeText,omitempty"`
}
