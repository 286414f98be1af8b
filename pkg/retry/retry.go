// Package retry runs an operation a bounded number of times with a jittered
// exponential backoff between attempts.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const baseDelay = 100 * time.Millisecond

// Config bounds the attempts Do makes. A zero MaxAttempts means one try.
type Config struct {
	MaxAttempts int
}

// Do runs fn until it succeeds or the attempts are spent. Context
// cancellation interrupts the wait between attempts and carries the last
// attempt's error.
func Do(ctx context.Context, c Config, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		timer.Reset(backoff(attempt))
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
	return err
}

func backoff(attempt int) time.Duration {
	base := baseDelay << attempt
	jitter := time.Duration(rand.IntN(int(base / 2)))
	return base + jitter
}
