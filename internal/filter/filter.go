// Package filter decides which archive posts are candidates for deletion.
package filter

import (
	"time"

	"github.com/tweetwipe/tweetwipe/internal/archive"
)

// Mode restricts eligibility to one side of the reply/top-level split.
type Mode int

const (
	// ModeAll applies no reply/top-level restriction.
	ModeAll Mode = iota
	// ModeRepliesOnly keeps only replies.
	ModeRepliesOnly
	// ModeTopLevelOnly keeps only top-level posts.
	ModeTopLevelOnly
)

func (m Mode) String() string {
	switch m {
	case ModeRepliesOnly:
		return "replies-only"
	case ModeTopLevelOnly:
		return "top-level-only"
	default:
		return "all"
	}
}

// Config holds the active filter criteria. The zero value matches everything.
type Config struct {
	// Before keeps only posts created strictly before this date.
	// Comparison is at day granularity in UTC.
	Before *time.Time
	Mode   Mode
}

// Eligible reports whether the post passes every active criterion.
func (c Config) Eligible(p archive.Post) bool {
	if c.Before != nil && !truncateToDay(p.CreatedAt).Before(truncateToDay(*c.Before)) {
		return false
	}

	switch c.Mode {
	case ModeRepliesOnly:
		return p.IsReply()
	case ModeTopLevelOnly:
		return !p.IsReply()
	}

	return true
}

// Apply returns the posts passing the filter, preserving input order.
func Apply(posts []archive.Post, cfg Config) []archive.Post {
	eligible := make([]archive.Post, 0, len(posts))
	for _, p := range posts {
		if cfg.Eligible(p) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
