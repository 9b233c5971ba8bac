package availability

import (
	"math"
	"time"

	"matching-workers/internal/models"
)

const (
	// SlotDuration is the width of every generated slot.
	SlotDuration = 30 * time.Minute

	firstGridHour = 9
	lastGridHour  = 24
	bufferHours   = 1
)

// JST is the only civil time zone the grid is computed in.
var JST = time.FixedZone("JST", 9*60*60)

// DateLayout is the calendar-date format used for DaySlots.Date and the backend query.
const DateLayout = "2006-01-02"

// DayStart returns midnight of the civil date of t in JST.
func DayStart(t time.Time) time.Time {
	j := t.In(JST)
	return time.Date(j.Year(), j.Month(), j.Day(), 0, 0, 0, 0, JST)
}

// ParseDate parses a YYYY-MM-DD date as midnight JST.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, JST)
}

// BuildDayGrid expands the raw windows of one day into 30-minute slots.
// A day without windows yields an empty, non-nil slice.
func BuildDayGrid(day time.Time, windows []models.AvailabilitySlot) []models.TimeSlot {
	slots := []models.TimeSlot{}
	if len(windows) == 0 {
		return slots
	}

	dayStart := DayStart(day)
	fromHour, toHour := hourSpan(dayStart, windows)
	fromHour = max(fromHour-bufferHours, firstGridHour)
	toHour = min(toHour+bufferHours, lastGridHour)
	if fromHour >= toHour {
		return slots
	}

	y, m, d := dayStart.Date()
	for minute := fromHour * 60; minute < toHour*60; minute += int(SlotDuration / time.Minute) {
		start := time.Date(y, m, d, 0, minute, 0, 0, JST)
		end := start.Add(SlotDuration)
		status := models.SlotBlocked
		if covered(start, end, windows) {
			status = models.SlotOpen
		}
		slots = append(slots, models.TimeSlot{Start: start, End: end, Status: status})
	}
	return slots
}

// hourSpan returns the earliest start hour (floored) and the latest end hour
// (rounded up) of windows, as hour offsets from dayStart in [0, 24].
func hourSpan(dayStart time.Time, windows []models.AvailabilitySlot) (int, int) {
	from, to := math.MaxInt, math.MinInt
	for _, w := range windows {
		s := int(math.Floor(w.StartAt.Sub(dayStart).Hours()))
		e := int(math.Ceil(w.EndAt.Sub(dayStart).Hours()))
		from = min(from, s)
		to = max(to, e)
	}
	return max(from, 0), min(to, lastGridHour)
}

func covered(start, end time.Time, windows []models.AvailabilitySlot) bool {
	for _, w := range windows {
		if !start.Before(w.StartAt) && !end.After(w.EndAt) {
			return true
		}
	}
	return false
}
