// Package scheduler drives independent delete operations under a concurrency
// cap. A fixed set of worker goroutines pulls posts from a feed channel
// populated in input order, so at most Config.MaxTasks deletes are in flight
// at any instant while completion order stays unconstrained.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/tweetwipe/tweetwipe/internal/archive"
	"github.com/tweetwipe/tweetwipe/internal/deleter"
	"github.com/tweetwipe/tweetwipe/internal/logger"
)

// DefaultMaxTasks is the concurrency cap used when none is configured.
const DefaultMaxTasks = 10

// Config controls one scheduling run.
type Config struct {
	// MaxTasks is the maximum number of concurrently in-flight deletes.
	MaxTasks int
	DryRun   bool
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.MaxTasks < 1 {
		return fmt.Errorf("max tasks must be at least 1, got %d", c.MaxTasks)
	}
	return nil
}

// Deleter produces one terminal outcome per post.
type Deleter interface {
	Delete(ctx context.Context, postID string) deleter.Outcome
}

// Pool dispatches posts to a bounded set of workers.
type Pool struct {
	cfg     Config
	deleter Deleter
	log     *logger.Logger

	mu      sync.Mutex
	metrics Metrics
}

// Metrics tracks dispatch accounting for one run.
type Metrics struct {
	Dispatched int
	Completed  int
	Failed     int
	Skipped    int
}

// New creates a pool. MaxTasks must already be validated.
func New(cfg Config, d Deleter, log *logger.Logger) *Pool {
	if cfg.MaxTasks < 1 {
		cfg.MaxTasks = DefaultMaxTasks
	}
	return &Pool{
		cfg:     cfg,
		deleter: d,
		log:     log,
	}
}

// Run processes posts and streams one outcome per dispatched post.
// The returned channel closes once every dispatched operation has reported,
// or immediately for empty input. Cancelling ctx stops new dispatch at once;
// in-flight deletes observe the context themselves and still report.
func (p *Pool) Run(ctx context.Context, posts []archive.Post) <-chan deleter.Outcome {
	outcomes := make(chan deleter.Outcome, p.cfg.MaxTasks)

	workers := p.cfg.MaxTasks
	if len(posts) < workers {
		workers = len(posts)
	}

	if workers == 0 {
		close(outcomes)
		return outcomes
	}

	feed := make(chan archive.Post)

	go func() {
		defer close(feed)
		for _, post := range posts {
			select {
			case feed <- post:
			case <-ctx.Done():
				p.log.Debug("dispatch stopped by cancellation",
					logger.Field{Key: "dispatched", Value: p.Metrics().Dispatched},
					logger.Field{Key: "total", Value: len(posts)})
				return
			}
		}
	}()

	var wg sync.WaitGroup
	p.log.Debug("starting workers",
		logger.Field{Key: "workers", Value: workers},
		logger.Field{Key: "posts", Value: len(posts)},
		logger.Field{Key: "dry_run", Value: p.cfg.DryRun})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, feed, outcomes)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	return outcomes
}

// worker drains the feed, running one delete at a time.
func (p *Pool) worker(ctx context.Context, wg *sync.WaitGroup, feed <-chan archive.Post, outcomes chan<- deleter.Outcome) {
	defer wg.Done()

	for post := range feed {
		p.markDispatched()

		outcome := p.deleter.Delete(ctx, post.ID)
		p.record(outcome)

		outcomes <- outcome
	}
}

// Metrics returns a snapshot of the run accounting.
func (p *Pool) Metrics() Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}

func (p *Pool) markDispatched() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metrics.Dispatched++
}

func (p *Pool) record(outcome deleter.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch outcome.Status {
	case deleter.StatusDeleted:
		p.metrics.Completed++
	case deleter.StatusSkippedDryRun:
		p.metrics.Skipped++
	case deleter.StatusFailed:
		p.metrics.Failed++
	}
}
