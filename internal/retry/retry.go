// Package retry runs an operation a bounded number of times.
package retry

import (
	"context"
	"fmt"
	"time"
)

type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // linear backoff: attempt * Delay
}

// Do calls fn until it succeeds, attempts run out, or ctx is cancelled.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		delay := cfg.Delay
		if cfg.Backoff {
			delay = time.Duration(attempt) * cfg.Delay
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
