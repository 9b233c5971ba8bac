package database

import (
	"context"
	"fmt"
	"time"
)

// Pinger is any dependency with a context-aware health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WaitFor pings p up to attempts times, doubling the delay after each failure.
func WaitFor(ctx context.Context, name string, p Pinger, attempts int, delay time.Duration) error {
	var err error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = p.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("%s not reachable after %d attempts: %w", name, attempts, err)
}
