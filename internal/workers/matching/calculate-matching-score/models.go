// internal/workers/matching/calculate-matching-score/models.go
package calculatematchingscore

import "matching-workers/internal/models"

// Input scores one guest against one therapist. Either Therapist or
// TherapistID must be set; an inline profile wins. CoreScore defaults to the
// therapist's track record and AvailabilityScore to the profile's own value.
type Input struct {
	GuestPreference   models.GuestPreference   `json:"guestPreference"`
	Therapist         *models.TherapistProfile `json:"therapist,omitempty"`
	TherapistID       string                   `json:"therapistId,omitempty"`
	CoreScore         *float64                 `json:"coreScore,omitempty"`
	AvailabilityScore *float64                 `json:"availabilityScore,omitempty"`
}

type Output = models.MatchingResult
