// Package deleter wraps the wire-level delete call with proactive rate
// pacing and class-aware retry. Rate-limit responses wait at least until the
// advertised window reset; transient failures get a short exponential
// backoff; permanent failures are surfaced immediately.
package deleter

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/tweetwipe/tweetwipe/internal/logger"
	"github.com/tweetwipe/tweetwipe/internal/retry"
	"github.com/tweetwipe/tweetwipe/internal/twitter"
)

// Transport issues the actual remote delete call.
type Transport interface {
	DestroyTweet(ctx context.Context, id string) error
}

// Config controls the delete client's behavior.
type Config struct {
	DryRun bool
	// RateLimit is the retry policy for rate-limited responses (default:
	// 5 attempts, 15s initial backoff, 15m cap).
	RateLimit retry.Policy
	// Transient is the retry policy for 5xx and connection failures
	// (default: 3 attempts, 1s initial backoff, 30s cap).
	Transient retry.Policy
	// Limiter paces remote calls across all workers. Defaults to 4 calls
	// per second, which stays well inside the statuses/destroy budget.
	Limiter *rate.Limiter
}

// Deleter is the rate-limited delete client.
type Deleter struct {
	transport Transport
	dryRun    bool
	rateLimit retry.Policy
	transient retry.Policy
	limiter   *rate.Limiter
	log       *logger.Logger
}

// New creates a delete client around the given transport.
func New(transport Transport, cfg Config, log *logger.Logger) *Deleter {
	rateLimit := cfg.RateLimit
	if rateLimit.MaxAttempts <= 0 {
		rateLimit.MaxAttempts = 5
	}
	if rateLimit.InitialBackoff <= 0 {
		rateLimit.InitialBackoff = 15 * time.Second
	}
	if rateLimit.MaxBackoff <= 0 {
		rateLimit.MaxBackoff = 15 * time.Minute
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(250*time.Millisecond), 1)
	}

	return &Deleter{
		transport: transport,
		dryRun:    cfg.DryRun,
		rateLimit: rateLimit.Normalized(),
		transient: cfg.Transient.Normalized(),
		limiter:   limiter,
		log:       log,
	}
}

// Delete drives one post to a terminal outcome. In dry-run mode the
// transport is never touched. The context is checked before every attempt
// and during every backoff wait.
func (d *Deleter) Delete(ctx context.Context, postID string) Outcome {
	start := time.Now()

	if d.dryRun {
		return Outcome{
			PostID:   postID,
			Status:   StatusSkippedDryRun,
			Duration: time.Since(start),
		}
	}

	var rateLimitRetries, transientRetries, attempts int

	for {
		if err := ctx.Err(); err != nil {
			return d.failed(postID, ReasonCancelled, err, attempts, start)
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return d.failed(postID, ReasonCancelled, err, attempts, start)
		}

		attempts++
		err := d.transport.DestroyTweet(ctx, postID)
		if err == nil {
			return Outcome{
				PostID:   postID,
				Status:   StatusDeleted,
				Attempts: attempts,
				Duration: time.Since(start),
			}
		}

		class, reason := classify(err)
		switch class {
		case classRateLimited:
			if rateLimitRetries >= d.rateLimit.MaxAttempts-1 {
				return d.failed(postID, ReasonRateLimited, err, attempts, start)
			}
			delay := d.rateLimit.Backoff(rateLimitRetries)
			if until := resetDelay(err); until > delay {
				delay = until
			}
			rateLimitRetries++

			d.log.Warn("rate limited, backing off",
				logger.Field{Key: "post_id", Value: postID},
				logger.Field{Key: "delay", Value: delay.String()},
				logger.Field{Key: "retry", Value: rateLimitRetries})

			if err := d.rateLimit.Wait(ctx, delay); err != nil {
				return d.failed(postID, ReasonCancelled, err, attempts, start)
			}

		case classTransient:
			if transientRetries >= d.transient.MaxAttempts-1 {
				return d.failed(postID, reason, err, attempts, start)
			}
			delay := d.transient.Backoff(transientRetries)
			transientRetries++

			d.log.Debug("transient failure, retrying",
				logger.Field{Key: "post_id", Value: postID},
				logger.Field{Key: "delay", Value: delay.String()},
				logger.Field{Key: "error", Value: err.Error()})

			if err := d.transient.Wait(ctx, delay); err != nil {
				return d.failed(postID, ReasonCancelled, err, attempts, start)
			}

		default:
			return d.failed(postID, reason, err, attempts, start)
		}
	}
}

func (d *Deleter) failed(postID, reason string, err error, attempts int, start time.Time) Outcome {
	return Outcome{
		PostID:   postID,
		Status:   StatusFailed,
		Reason:   reason,
		Err:      err,
		Attempts: attempts,
		Duration: time.Since(start),
	}
}

// resetDelay extracts the wait until the rate-limit window resets, if the
// response advertised one.
func resetDelay(err error) time.Duration {
	var apiErr *twitter.APIError
	if !errors.As(err, &apiErr) || apiErr.RateLimitReset.IsZero() {
		return 0
	}
	return time.Until(apiErr.RateLimitReset)
}
