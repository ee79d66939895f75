// Package retry provides a backoff policy for remote calls.
// A Policy carries the attempt budget and the backoff schedule; the sleep
// function is injectable so tests can run without real delays.
package retry

import (
	"context"
	"time"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
)

// SleepFunc waits for the given duration or until the context is cancelled.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy describes how often and with what delays an operation may be retried.
type Policy struct {
	MaxAttempts    int           // Total attempt budget, including the first call (default: 3)
	InitialBackoff time.Duration // Backoff before the first retry (default: 1s)
	MaxBackoff     time.Duration // Cap for the backoff schedule (default: 30s)
	Sleep          SleepFunc     // Overridable for tests; defaults to a context-aware timer
}

// Normalized returns a copy of the policy with defaults applied.
func (p Policy) Normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = defaultInitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = defaultMaxBackoff
	}
	if p.Sleep == nil {
		p.Sleep = sleep
	}
	return p
}

// Backoff returns the delay before retry number retryIndex (zero-based).
// The schedule is exponential: 2^retryIndex * InitialBackoff, capped at
// MaxBackoff.
func (p Policy) Backoff(retryIndex int) time.Duration {
	if retryIndex < 0 {
		retryIndex = 0
	}

	backoff := time.Duration(1<<uint(retryIndex)) * p.InitialBackoff
	if backoff > p.MaxBackoff || backoff <= 0 {
		return p.MaxBackoff
	}
	return backoff
}

// Wait sleeps for d using the policy's sleep function.
// Returns the context error if cancelled mid-wait.
func (p Policy) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	return p.Sleep(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
