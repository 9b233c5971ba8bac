package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"matching-workers/internal/models"
)

const windowsQuery = `
	SELECT start_at, end_at
	FROM therapist_availability
	WHERE therapist_id = $1
	  AND start_at < $3
	  AND end_at > $2
	ORDER BY start_at
`

// PostgresSource reads windows overlapping the JST day from therapist_availability.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (p *PostgresSource) FetchWindows(ctx context.Context, therapistID string, day time.Time) ([]models.AvailabilitySlot, error) {
	from := DayStart(day)
	to := from.AddDate(0, 0, 1)

	rows, err := p.db.QueryContext(ctx, windowsQuery, therapistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	defer rows.Close()

	var out []models.AvailabilitySlot
	for rows.Next() {
		var w models.AvailabilitySlot
		if err := rows.Scan(&w.StartAt, &w.EndAt); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability: %w", err)
	}
	return out, nil
}

func (p *PostgresSource) Name() string { return "postgres" }
