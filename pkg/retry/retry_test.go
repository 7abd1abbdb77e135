package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"image-calendar-generator/pkg/retry"
)

func TestDo(t *testing.T) {
	errTransient := errors.New("transient")
	errPermanent := errors.New("permanent")

	t.Run("Succeeds first attempt", func(t *testing.T) {
		calls := 0
		p := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

		err := p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("Retries transient until success", func(t *testing.T) {
		calls := 0
		p := retry.Policy{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
			Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
		}

		err := p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("Exhausts attempts", func(t *testing.T) {
		calls := 0
		p := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

		err := p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errTransient
		})
		if !errors.Is(err, errTransient) {
			t.Fatalf("expected last error, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("Permanent error stops immediately", func(t *testing.T) {
		calls := 0
		p := retry.Policy{
			MaxAttempts: 5,
			BaseDelay:   time.Millisecond,
			Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
		}

		err := p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errPermanent
		})
		if !errors.Is(err, errPermanent) {
			t.Fatalf("expected permanent error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("Context cancellation aborts backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := retry.Policy{MaxAttempts: 5, BaseDelay: time.Minute}

		calls := 0
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := p.Do(ctx, func(ctx context.Context) error {
			calls++
			return errTransient
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call before cancellation, got %d", calls)
		}
	})

	t.Run("Zero attempts runs once", func(t *testing.T) {
		calls := 0
		p := retry.Policy{}

		p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errTransient
		})
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})
}
