// internal/workers/data-access/search-therapists/config.go
package searchtherapists

import "time"

type Config struct {
	Index       string
	DefaultSize int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:       "therapists",
		DefaultSize: 50,
		Timeout:     10 * time.Second,
	}
}
