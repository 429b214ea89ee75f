package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryWithBackoff retries fn up to maxRetries times with exponential backoff
func RetryWithBackoff(ctx context.Context, maxRetries int, fn func() error, logger *Logger) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxElapsedTime = 0

	attempt := 0
	var lastErr error
	err := backoff.RetryNotify(
		func() error {
			attempt++
			if err := fn(); err != nil {
				lastErr = err
				logger.Error("Attempt %d failed: %v", attempt, err)
				return err
			}
			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(maxRetries-1)), ctx),
		func(_ error, wait time.Duration) {
			logger.Warn("Retrying (attempt %d/%d) after %v...", attempt+1, maxRetries, wait)
		},
	)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return fmt.Errorf("all %d attempts failed, last error: %w", attempt, lastErr)
	}
	return nil
}
