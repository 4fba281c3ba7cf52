package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a remote backend that could not be reached.
var ErrNetwork = errors.New("network error")

// retryAttempts bounds RetryWithBackoff, first call included.
const retryAttempts = 3

type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient. The message is unchanged; nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// Retryable.
func IsRetryable(err error) bool {
	return errors.As(err, new(retryableError))
}

// RetryWithBackoff calls fn up to three times, waiting 1s then 2s between
// attempts. Errors not marked Retryable are returned immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return RetryWithBackoffFrom(ctx, time.Second, fn)
}

// RetryWithBackoffFrom is RetryWithBackoff starting from delay. Cancelling
// ctx during a wait returns ctx.Err().
func RetryWithBackoffFrom(ctx context.Context, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
