package deleter

import (
	"context"
	"errors"

	"github.com/tweetwipe/tweetwipe/internal/twitter"
)

// failureClass determines the retry behavior for a failed remote call.
type failureClass int

const (
	// classRateLimited retries after the rate-limit window resets.
	classRateLimited failureClass = iota
	// classTransient retries a small number of times with short backoff.
	classTransient
	// classPermanent never retries.
	classPermanent
)

// classify maps an error from the transport to a failure class and a
// stable reason string.
func classify(err error) (failureClass, string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return classPermanent, ReasonCancelled
	}

	var apiErr *twitter.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.RateLimited():
			return classRateLimited, ReasonRateLimited
		case apiErr.Transient():
			return classTransient, ReasonTransient
		case apiErr.NotFound():
			return classPermanent, ReasonNotFound
		case apiErr.Unauthorized():
			return classPermanent, ReasonUnauthorized
		case apiErr.Forbidden():
			return classPermanent, ReasonForbidden
		default:
			return classPermanent, ReasonAPIError
		}
	}

	// Anything else is a connection-level failure.
	return classTransient, ReasonTransient
}
