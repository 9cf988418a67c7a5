// Package retry implements the transient-failure policy used for all
// tracker calls: a fixed number of attempts with exponential backoff.
package retry

import (
	"context"
	"time"

	"courseops/internal/tracker"
)

// Policy controls how an operation is retried. Sleep is injectable so
// tests can observe backoff without waiting.
type Policy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	Sleep    func(ctx context.Context, d time.Duration) error
}

// Default returns the standard policy: three attempts, backoff
// doubling from one second and capped at eight.
func Default() Policy {
	return Policy{
		Attempts: 3,
		Initial:  time.Second,
		Max:      8 * time.Second,
	}
}

// Do runs fn until it succeeds, fails with a non-retryable error, or
// the attempt budget is spent. Exhaustion is reported as an
// UnavailableError wrapping the last failure.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = wait
	}
	backoff := p.Initial
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff *= 2
			if p.Max > 0 && backoff > p.Max {
				backoff = p.Max
			}
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !tracker.IsRetryable(lastErr) {
			return lastErr
		}
	}
	return &tracker.UnavailableError{Op: op, Attempts: attempts, Err: lastErr}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
