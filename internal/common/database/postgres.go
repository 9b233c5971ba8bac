// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"matching-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a lib/pq pool. The connection is not verified until Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS therapist_profiles (
	id                     TEXT PRIMARY KEY,
	name                   TEXT NOT NULL DEFAULT '',
	area                   TEXT NOT NULL DEFAULT '',
	shop_id                TEXT NOT NULL DEFAULT '',
	look_tags              TEXT[] NOT NULL DEFAULT '{}',
	talk_style             TEXT NOT NULL DEFAULT '',
	pressure_level         TEXT NOT NULL DEFAULT '',
	mood_tags              TEXT[] NOT NULL DEFAULT '{}',
	bookings_30d           INTEGER NOT NULL DEFAULT 0,
	repeat_rate_30d        DOUBLE PRECISION NOT NULL DEFAULT 0,
	avg_review_score       DOUBLE PRECISION NOT NULL DEFAULT 0,
	price_level            SMALLINT NOT NULL DEFAULT 0,
	days_since_first_shift INTEGER NOT NULL DEFAULT -1,
	utilization_rate_7d    DOUBLE PRECISION NOT NULL DEFAULT 0,
	availability_score     DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS therapist_availability (
	therapist_id TEXT NOT NULL REFERENCES therapist_profiles(id),
	start_at     TIMESTAMPTZ NOT NULL,
	end_at       TIMESTAMPTZ NOT NULL,
	CHECK (end_at > start_at)
);

CREATE INDEX IF NOT EXISTS therapist_availability_lookup
	ON therapist_availability (therapist_id, start_at);
`

// EnsureSchema creates the profile and availability tables when missing.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
