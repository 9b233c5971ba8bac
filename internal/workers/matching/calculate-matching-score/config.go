// internal/workers/matching/calculate-matching-score/config.go
package calculatematchingscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
