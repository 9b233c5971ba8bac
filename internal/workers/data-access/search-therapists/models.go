// internal/workers/data-access/search-therapists/models.go
package searchtherapists

import "matching-workers/internal/models"

type Input struct {
	GuestIntent models.GuestIntent `json:"guestIntent"`
	Size        int                `json:"size,omitempty"`
}

type Output struct {
	Candidates []models.TherapistProfile `json:"candidates"`
	TotalHits  int64                     `json:"totalHits"`
	Took       int64                     `json:"took"` // milliseconds
}
