package capture

import (
	"fmt"
	"time"
)

// RetryPolicy retries a fallible operation a bounded number of times
// with a fixed delay between attempts.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first
	MaxAttempts int

	// Delay is the fixed pause between attempts
	Delay time.Duration
}

// Do runs op until it succeeds or MaxAttempts is exhausted. onRetry is
// invoked after each failed attempt that will be retried, letting the
// caller log or reload the page between attempts.
func (p RetryPolicy) Do(op func() error, onRetry func(attempt int, err error)) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if attempt < p.MaxAttempts {
			if onRetry != nil {
				onRetry(attempt, lastErr)
			}
			time.Sleep(p.Delay)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, lastErr)
}
