// Package retry provides a bounded retry policy with linear backoff for
// calls against external providers.
package retry

import (
	"context"
	"time"
)

// Policy describes how a call is retried: how many attempts, the base
// delay between them, and which errors qualify for another attempt.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Retryable reports whether the error is worth another attempt.
	// A nil Retryable retries every error.
	Retryable func(error) bool
}

// Do runs fn up to MaxAttempts times. The delay before attempt n is
// n * BaseDelay. Non-retryable errors are returned immediately; context
// cancellation aborts the wait between attempts.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * p.BaseDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
	}

	return lastErr
}
