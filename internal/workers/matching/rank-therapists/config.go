// internal/workers/matching/rank-therapists/config.go
package ranktherapists

import "time"

type Config struct {
	// MaxRanked caps the returned list when the job does not ask for a size. Zero keeps every candidate.
	MaxRanked int
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxRanked: 0,
		Timeout:   5 * time.Second,
	}
}
