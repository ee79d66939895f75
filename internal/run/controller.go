// Package run composes the filter, the scheduler and the outcome aggregation
// into one deletion run, with confirmation and dry-run safety in front.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/tweetwipe/tweetwipe/internal/archive"
	"github.com/tweetwipe/tweetwipe/internal/deleter"
	"github.com/tweetwipe/tweetwipe/internal/filter"
	"github.com/tweetwipe/tweetwipe/internal/logger"
	"github.com/tweetwipe/tweetwipe/internal/scheduler"
)

// ErrDeclined means the user rejected the confirmation prompt. The run
// aborts cleanly with zero deletions.
var ErrDeclined = errors.New("deletion declined")

// ErrAuthRevoked means the API rejected the credentials mid-run. Remaining
// work is cancelled because no further delete can succeed.
var ErrAuthRevoked = errors.New("credentials rejected by the API")

// ConfirmFunc asks the user to confirm deleting up to count posts.
type ConfirmFunc func(count int) (bool, error)

// Options configures one run.
type Options struct {
	Filter    filter.Config
	Scheduler scheduler.Config
	// Yes bypasses the confirmation prompt.
	Yes bool
	// ShowProgress renders a progress bar while outcomes stream in.
	ShowProgress bool
}

// Controller orchestrates a single deletion run.
type Controller struct {
	opts    Options
	deleter scheduler.Deleter
	confirm ConfirmFunc
	log     *logger.Logger
}

// New creates a run controller. confirm may be nil when opts.Yes is set or
// the run is a dry run.
func New(opts Options, d scheduler.Deleter, confirm ConfirmFunc, log *logger.Logger) *Controller {
	return &Controller{
		opts:    opts,
		deleter: d,
		confirm: confirm,
		log:     log,
	}
}

// Execute filters posts, gates on confirmation, schedules the deletions and
// folds the outcome stream into a Summary.
//
// Per-item failures never surface as an error; only a declined confirmation
// or revoked credentials do. The returned summary is always populated.
func (c *Controller) Execute(ctx context.Context, posts []archive.Post) (*Summary, error) {
	eligible := filter.Apply(posts, c.opts.Filter)

	summary := &Summary{
		RunID:     uuid.NewString(),
		Eligible:  len(eligible),
		StartedAt: time.Now(),
	}

	c.log.Info("run prepared",
		logger.Field{Key: "run_id", Value: summary.RunID},
		logger.Field{Key: "loaded", Value: len(posts)},
		logger.Field{Key: "eligible", Value: len(eligible)},
		logger.Field{Key: "mode", Value: c.opts.Filter.Mode.String()},
		logger.Field{Key: "dry_run", Value: c.opts.Scheduler.DryRun})

	if !c.opts.Scheduler.DryRun && !c.opts.Yes {
		ok, err := c.confirm(len(eligible))
		if err != nil {
			return summary, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			summary.Skipped = len(eligible)
			summary.FinishedAt = time.Now()
			return summary, ErrDeclined
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := scheduler.New(c.opts.Scheduler, c.deleter, c.log)
	outcomes := pool.Run(runCtx, eligible)

	var bar *progressbar.ProgressBar
	if c.opts.ShowProgress {
		bar = progressbar.Default(int64(len(eligible)), "deleting")
	}

	var fatal error
	for outcome := range outcomes {
		summary.add(outcome)
		if bar != nil {
			_ = bar.Add(1)
		}

		if outcome.Status == deleter.StatusFailed {
			c.log.Warn("delete failed",
				logger.Field{Key: "post_id", Value: outcome.PostID},
				logger.Field{Key: "reason", Value: outcome.Reason})

			// Revoked credentials invalidate everything still pending.
			if outcome.Reason == deleter.ReasonUnauthorized && fatal == nil {
				fatal = fmt.Errorf("%w: %v", ErrAuthRevoked, outcome.Err)
				cancel()
			}
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	summary.FinishedAt = time.Now()

	c.log.Info("run finished",
		logger.Field{Key: "run_id", Value: summary.RunID},
		logger.Field{Key: "deleted", Value: summary.Deleted},
		logger.Field{Key: "skipped", Value: summary.Skipped},
		logger.Field{Key: "failed", Value: summary.Failed})

	return summary, fatal
}
