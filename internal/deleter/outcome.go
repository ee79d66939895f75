package deleter

import "time"

// Status is the closed set of terminal states for one post.
type Status int

const (
	// StatusDeleted means the remote deletion succeeded.
	StatusDeleted Status = iota
	// StatusSkippedDryRun means dry-run mode skipped the remote call.
	StatusSkippedDryRun
	// StatusFailed means the deletion did not happen; Reason says why.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDeleted:
		return "deleted"
	case StatusSkippedDryRun:
		return "skipped_dry_run"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Failure reasons surfaced in outcomes and the final report.
const (
	ReasonRateLimited  = "rate_limited"
	ReasonTransient    = "transient"
	ReasonNotFound     = "not_found"
	ReasonUnauthorized = "unauthorized"
	ReasonForbidden    = "forbidden"
	ReasonAPIError     = "api_error"
	ReasonCancelled    = "cancelled"
)

// Outcome is the result of processing one post. Produced exactly once per
// dispatched post.
type Outcome struct {
	PostID   string
	Status   Status
	Reason   string // Set only for StatusFailed
	Err      error  // Underlying error, if any
	Attempts int    // Remote calls actually made
	Duration time.Duration
}
