// Package store loads therapist profiles from PostgreSQL behind a Redis read-through cache.
package store

import (
	"context"
	"errors"

	"matching-workers/internal/models"
)

// ErrNotFound is returned when no profile exists for an id.
var ErrNotFound = errors.New("therapist profile not found")

type ProfileStore interface {
	GetProfile(ctx context.Context, therapistID string) (*models.TherapistProfile, error)
}
