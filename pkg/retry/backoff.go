// Package retry runs an operation until it succeeds, the attempts run out or
// the context is done.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Backoff struct {
	Attempts   int
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

func DefaultBackoff() Backoff {
	return Backoff{
		Attempts:   3,
		Initial:    100 * time.Millisecond,
		Max:        5 * time.Second,
		Multiplier: 2,
	}
}

// Delay is the wait after the given failed attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	delay := b.Initial
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * b.Multiplier)
		if b.Max > 0 && delay >= b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && delay > b.Max {
		return b.Max
	}
	return delay
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent stops Do without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// ExhaustedError wraps the last failure once every attempt is spent.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do calls fn with the 1-based attempt number. A Permanent error is returned
// unwrapped; a cancelled context returns ctx.Err().
func Do(ctx context.Context, b Backoff, fn func(ctx context.Context, attempt int) error) error {
	return do(ctx, b, fn, sleep)
}

func do(ctx context.Context, b Backoff, fn func(ctx context.Context, attempt int) error, wait func(context.Context, time.Duration) error) error {
	if b.Attempts < 1 {
		b.Attempts = 1
	}

	var last error
	for attempt := 1; attempt <= b.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		last = fn(ctx, attempt)
		if last == nil {
			return nil
		}

		var permanent *permanentError
		if errors.As(last, &permanent) {
			return permanent.err
		}

		if attempt < b.Attempts {
			if err := wait(ctx, b.Delay(attempt)); err != nil {
				return err
			}
		}
	}

	return &ExhaustedError{Attempts: b.Attempts, Last: last}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
