package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"matching-workers/internal/models"
)

const profileQuery = `
	SELECT id, name, area, shop_id, look_tags, talk_style, pressure_level, mood_tags,
	       bookings_30d, repeat_rate_30d, avg_review_score, price_level,
	       days_since_first_shift, utilization_rate_7d, availability_score
	FROM therapist_profiles
	WHERE id = $1
`

type PostgresProfiles struct {
	db *sql.DB
}

func NewPostgresProfiles(db *sql.DB) *PostgresProfiles {
	return &PostgresProfiles{db: db}
}

func (p *PostgresProfiles) GetProfile(ctx context.Context, therapistID string) (*models.TherapistProfile, error) {
	var (
		t         models.TherapistProfile
		lookTags  pq.StringArray
		moodTags  pq.StringArray
		priceTier int
	)

	err := p.db.QueryRowContext(ctx, profileQuery, therapistID).Scan(
		&t.ID, &t.Name, &t.Area, &t.ShopID, &lookTags, &t.TalkStyle, &t.PressureLevel, &moodTags,
		&t.Bookings30d, &t.RepeatRate30d, &t.AvgReviewScore, &priceTier,
		&t.DaysSinceFirstShift, &t.UtilizationRate7d, &t.AvailabilityScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query therapist profile: %w", err)
	}

	t.LookTags = []string(lookTags)
	t.MoodTags = []string(moodTags)
	t.PriceLevel = models.PriceTier(priceTier)
	if !t.PriceLevel.Valid() {
		t.PriceLevel = models.PriceTierUnknown
	}
	return &t, nil
}
