// internal/models/therapist.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PriceTier is the therapist-side price category. The zero value means unknown.
type PriceTier int

const (
	PriceTierUnknown  PriceTier = 0
	PriceTierValue    PriceTier = 1
	PriceTierStandard PriceTier = 2
	PriceTierPremium  PriceTier = 3
)

var priceTierNames = map[PriceTier]string{
	PriceTierValue:    "value",
	PriceTierStandard: "standard",
	PriceTierPremium:  "premium",
}

// ParsePriceTier accepts "value"/"standard"/"premium" or "1".."3".
// Anything else yields PriceTierUnknown.
func ParsePriceTier(s string) PriceTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "value", "1":
		return PriceTierValue
	case "standard", "2":
		return PriceTierStandard
	case "premium", "3":
		return PriceTierPremium
	}
	return PriceTierUnknown
}

func (t PriceTier) Valid() bool {
	return t >= PriceTierValue && t <= PriceTierPremium
}

func (t PriceTier) String() string {
	if name, ok := priceTierNames[t]; ok {
		return name
	}
	return ""
}

func (t PriceTier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts both the numeric tier and its name.
func (t *PriceTier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = PriceTierUnknown
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = PriceTier(n)
		if !t.Valid() {
			*t = PriceTierUnknown
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("price tier must be a number or a name: %w", err)
	}
	*t = ParsePriceTier(s)
	return nil
}

// TherapistProfile is a ranking candidate as supplied by the backend.
type TherapistProfile struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name,omitempty"`
	Area                string    `json:"area,omitempty"`
	ShopID              string    `json:"shopId,omitempty"`
	LookTags            []string  `json:"lookTags,omitempty"`
	TalkStyle           string    `json:"talkStyle,omitempty"`
	PressureLevel       string    `json:"pressureLevel,omitempty"`
	MoodTags            []string  `json:"moodTags,omitempty"`
	Bookings30d         int       `json:"bookings30d"`
	RepeatRate30d       float64   `json:"repeatRate30d"`
	AvgReviewScore      float64   `json:"avgReviewScore"`
	PriceLevel          PriceTier `json:"priceLevel,omitempty"`
	DaysSinceFirstShift int       `json:"daysSinceFirstShift"`
	UtilizationRate7d   float64   `json:"utilizationRate7d"`
	AvailabilityScore   float64   `json:"availabilityScore"`
}
