package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a backend that could not be reached.
var ErrUnavailable = errors.New("cache unavailable")

// transientError marks a failure worth repeating, such as a dropped
// connection.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// transient wraps err so that a backoff repeats the operation.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

func isTransient(err error) bool {
	var t transientError
	return errors.As(err, &t)
}

// backoff repeats an operation while it fails with a transient error,
// doubling the pause after each attempt.
type backoff struct {
	attempts int
	first    time.Duration
}

// redisBackoff covers brief network hiccups; tests shorten it.
var redisBackoff = backoff{attempts: 3, first: 100 * time.Millisecond}

// run returns the first non-transient outcome of op, or the last error
// once attempts are exhausted.
func (b backoff) run(ctx context.Context, op func() error) error {
	pause := b.first
	err := op()
	for n := 1; n < b.attempts && isTransient(err); n++ {
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		pause *= 2
		err = op()
	}
	var t transientError
	if errors.As(err, &t) {
		return t.err
	}
	return err
}
