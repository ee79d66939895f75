package run

import (
	"time"

	"github.com/tweetwipe/tweetwipe/internal/deleter"
)

// Failure is one post that could not be deleted.
type Failure struct {
	PostID string
	Reason string
}

// Summary accumulates outcome counts for one run. It is mutated only by the
// controller's single outcome consumer and is final once Execute returns.
type Summary struct {
	RunID      string
	Eligible   int
	Deleted    int
	Skipped    int
	Failed     int
	Failures   []Failure
	StartedAt  time.Time
	FinishedAt time.Time
}

// Processed returns the number of posts with a recorded outcome.
func (s *Summary) Processed() int {
	return s.Deleted + s.Skipped + s.Failed
}

func (s *Summary) add(o deleter.Outcome) {
	switch o.Status {
	case deleter.StatusDeleted:
		s.Deleted++
	case deleter.StatusSkippedDryRun:
		s.Skipped++
	case deleter.StatusFailed:
		s.Failed++
		s.Failures = append(s.Failures, Failure{PostID: o.PostID, Reason: o.Reason})
	}
}
