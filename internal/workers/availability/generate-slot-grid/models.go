// internal/workers/availability/generate-slot-grid/models.go
package generateslotgrid

import "matching-workers/internal/models"

type Input struct {
	TherapistID string `json:"therapistId"`
}

type Output struct {
	TherapistID string            `json:"therapistId"`
	Days        []models.DaySlots `json:"days"`
	OpenSlots   int               `json:"openSlots"`
}
