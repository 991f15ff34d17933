package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryWithBackoff(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Errorf("RetryWithBackoff() error = %v, want nil", err)
		}
		if calls != 1 {
			t.Errorf("fn called %d times, want 1", calls)
		}
	})

	t.Run("retries transient errors then succeeds", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Errorf("RetryWithBackoff() error = %v, want nil", err)
		}
		if calls != 3 {
			t.Errorf("fn called %d times, want 3", calls)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return errors.New("always failing")
		})
		if err == nil {
			t.Error("RetryWithBackoff() error = nil, want error")
		}
		if calls != 3 {
			t.Errorf("fn called %d times, want 3", calls)
		}
	})

	t.Run("does not retry non-retryable errors", func(t *testing.T) {
		fatal := errors.New("credential revoked")
		cfgWithPredicate := RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
			Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
		}

		calls := 0
		err := RetryWithBackoff(context.Background(), cfgWithPredicate, func() error {
			calls++
			return fatal
		})
		if !errors.Is(err, fatal) {
			t.Errorf("RetryWithBackoff() error = %v, want %v", err, fatal)
		}
		if calls != 1 {
			t.Errorf("fn called %d times, want 1", calls)
		}
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := RetryWithBackoff(ctx, RetryConfig{MaxAttempts: 3, BaseDelay: time.Minute}, func() error {
			return errors.New("transient")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
		}
	})
}
