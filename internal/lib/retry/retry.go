package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds retries of transient infrastructure errors: Attempts total
// tries, exponential backoff starting at Backoff (doubling each failure).
type Policy struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts: 3,
		Backoff:  100 * time.Millisecond,
	}
}

// Do runs fn up to p.Attempts times, sleeping between tries. It returns nil
// on the first success, the last error once attempts are exhausted, or the
// context error if the caller is cancelled mid-backoff.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	backoff := p.Backoff

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff *= 2
	}

	return fmt.Errorf("after %d attempts: %w", attempts, err)
}
