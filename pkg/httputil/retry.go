// Package httputil provides transport-level helpers for registry clients.
//
// [Retry] re-runs an operation after transient failures with exponential
// backoff. Callers mark an error as transient by wrapping it in
// [RetryableError]; anything else aborts immediately. Registry clients use
// this around document fetches so a flaky connection or a 502 from a feed
// does not fail a whole resolution.
package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient so [Retry] attempts the
// operation again. Wrap network timeouts and 5xx responses; leave hard
// failures (a 404, a malformed document) unwrapped.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay after each failed
// attempt. Only errors wrapped in [RetryableError] are retried; other
// errors return immediately. Waiting respects ctx: cancellation during a
// backoff returns ctx.Err(). The last transient error is returned when all
// attempts fail.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
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

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
