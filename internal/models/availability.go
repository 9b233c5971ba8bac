// internal/models/availability.go
package models

import "time"

// AvailabilitySlot is one contiguous open window as returned by the backend.
type AvailabilitySlot struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type SlotStatus string

const (
	SlotOpen      SlotStatus = "open"
	SlotTentative SlotStatus = "tentative"
	SlotBlocked   SlotStatus = "blocked"
)

type TimeSlot struct {
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Status SlotStatus `json:"status"`
}

type DaySlots struct {
	Date    string     `json:"date"`
	IsToday bool       `json:"isToday"`
	Slots   []TimeSlot `json:"slots"`
}
