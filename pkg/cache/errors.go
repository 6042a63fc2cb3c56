package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBackend marks failures talking to a remote cache backend.
	ErrBackend = errors.New("cache backend unavailable")

	// ErrCacheMiss is for callers that want a miss as an error value.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so that [Backoff.Retry] tries again. nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or any error it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int           // total calls, at least one
	Delay    time.Duration // pause after the first failure, doubled each time
}

// DefaultBackoff is used by RedisCache.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Retry calls fn until it succeeds, returns an error that is not retryable,
// or runs out of attempts. It returns ctx.Err() if ctx ends while waiting.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// RetryWithBackoff retries fn with [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
