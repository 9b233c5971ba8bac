package availability

import (
	"context"
	"time"

	"matching-workers/internal/models"
)

// WindowSource returns the raw open windows of a therapist for one JST calendar day.
type WindowSource interface {
	FetchWindows(ctx context.Context, therapistID string, day time.Time) ([]models.AvailabilitySlot, error)
}

// SourceFunc adapts a function to WindowSource.
type SourceFunc func(ctx context.Context, therapistID string, day time.Time) ([]models.AvailabilitySlot, error)

func (f SourceFunc) FetchWindows(ctx context.Context, therapistID string, day time.Time) ([]models.AvailabilitySlot, error) {
	return f(ctx, therapistID, day)
}
