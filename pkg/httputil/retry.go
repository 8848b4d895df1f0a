package httputil

import (
	"context"
	"time"

	"github.com/matzehuels/mvnresolve/pkg/errors"
)

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors for which [errors.IsRetryable] is true (transport
// failures and 5xx rejections); other errors are returned immediately.
// The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
//
// The repository client never retries on its own. Retry is for callers,
// such as the CLI, that opt in.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !errors.IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: 3 attempts with 1 second initial delay (doubling each retry).
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
