// internal/workers/availability/generate-slot-grid/config.go
package generateslotgrid

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
