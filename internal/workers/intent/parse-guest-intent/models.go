// internal/workers/intent/parse-guest-intent/models.go
package parseguestintent

import "matching-workers/internal/models"

// Input carries the guest's search either as a raw query string
// ("area=shibuya&mood=calm") or as an already decoded parameter map.
type Input struct {
	RawQuery string                 `json:"rawQuery,omitempty"`
	Query    map[string]interface{} `json:"query,omitempty"`
}

type Output struct {
	GuestIntent     models.GuestIntent     `json:"guestIntent"`
	GuestPreference models.GuestPreference `json:"guestPreference"`
}
