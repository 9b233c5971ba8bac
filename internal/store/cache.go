package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/models"
)

const profileKeyPrefix = "therapist:profile:"

// CachedProfiles serves profiles from Redis and falls back to next on a miss.
// Redis failures degrade to a direct lookup.
type CachedProfiles struct {
	next   ProfileStore
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProfiles(next ProfileStore, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedProfiles {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CachedProfiles{next: next, redis: rdb, ttl: ttl, logger: log}
}

func ProfileKey(therapistID string) string {
	return profileKeyPrefix + therapistID
}

func (c *CachedProfiles) GetProfile(ctx context.Context, therapistID string) (*models.TherapistProfile, error) {
	key := ProfileKey(therapistID)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var t models.TherapistProfile
		if jsonErr := json.Unmarshal([]byte(val), &t); jsonErr == nil {
			metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
			return &t, nil
		}
		metrics.ProfileCacheLookups.WithLabelValues("corrupt").Inc()
	case errors.Is(err, redis.Nil):
		metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.ProfileCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("profile cache read failed", map[string]interface{}{
			"therapistId": therapistID,
			"error":       err,
		})
	}

	t, err := c.next.GetProfile(ctx, therapistID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(t); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("profile cache write failed", map[string]interface{}{
				"therapistId": therapistID,
				"error":       err,
			})
		}
	}
	return t, nil
}

// Invalidate drops a cached profile.
func (c *CachedProfiles) Invalidate(ctx context.Context, therapistID string) error {
	return c.redis.Del(ctx, ProfileKey(therapistID)).Err()
}
