// internal/workers/matching/rank-therapists/models.go
package ranktherapists

import "matching-workers/internal/models"

// Input ranks candidates for one guest. GuestPreference wins over
// GuestIntent; with neither the neutral preference is used. Candidates
// missing from CoreScores are scored on their track record.
type Input struct {
	GuestPreference *models.GuestPreference   `json:"guestPreference,omitempty"`
	GuestIntent     *models.GuestIntent       `json:"guestIntent,omitempty"`
	Candidates      []models.TherapistProfile `json:"candidates"`
	CoreScores      map[string]float64        `json:"coreScores,omitempty"`
	MaxItems        int                       `json:"maxItems,omitempty"`
}

type Output struct {
	RankingID        string                   `json:"rankingId"`
	RankedCandidates []models.RankedCandidate `json:"rankedCandidates"`
	TotalCandidates  int                      `json:"totalCandidates"`
}
