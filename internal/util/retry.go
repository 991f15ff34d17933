package util

import (
	"context"
	"fmt"
	"time"
)

type RetryConfig struct {
	// MaxAttempts includes the initial attempt.
	MaxAttempts int

	// BaseDelay is doubled after every failed attempt (2^attempt growth).
	BaseDelay time.Duration

	// Retryable decides whether an error is worth another attempt. A nil
	// predicate retries everything.
	Retryable func(error) bool
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	}
}

// RetryWithBackoff runs fn up to cfg.MaxAttempts times with exponential backoff
// between attempts. Non-retryable errors are returned immediately; context
// cancellation interrupts the backoff sleep.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	delay := cfg.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err

			if cfg.Retryable != nil && !cfg.Retryable(err) {
				return err
			}

			if attempt == cfg.MaxAttempts {
				break
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", cfg.MaxAttempts, lastErr)
}
