// Package retry provides a bounded retry helper with linear backoff,
// used to wrap flaky transport calls (SMTP delivery).
package retry

import (
	"context"
	"time"
)

// Strategy bounds a retried operation: at most Attempts calls, sleeping
// attempt*Delay between consecutive failures.
type Strategy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultStrategy matches the notification delivery policy: 3 attempts,
// 1s base delay.
func DefaultStrategy() Strategy {
	return Strategy{Attempts: 3, Delay: time.Second}
}

// Do runs fn until it succeeds, the strategy is exhausted, or ctx is done.
// The last error from fn is returned on exhaustion; a cancelled context
// returns ctx.Err().
func Do(ctx context.Context, s Strategy, fn func() error) error {
	if s.Attempts <= 0 {
		s.Attempts = 1
	}

	var last error
	for attempt := 1; attempt <= s.Attempts; attempt++ {
		if last = fn(); last == nil {
			return nil
		}
		if attempt == s.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.Delay):
		}
	}

	return last
}
