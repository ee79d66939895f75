package twitter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Twitter error codes relevant to deletion.
const (
	codeRateLimitExceeded = 88
	codeInvalidToken      = 89
	codeNoStatusFound     = 144
	codePageDoesNotExist  = 34
	codeCouldNotAuth      = 32
)

// APIError is a non-2xx response from the Twitter API.
type APIError struct {
	StatusCode     int
	Code           int // Twitter error code from the response body, 0 if absent
	Message        string
	RateLimitReset time.Time // From the x-rate-limit-reset header, zero if absent
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("twitter: %d %s (code %d)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("twitter: %d %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the error is rate limiting (HTTP 429 or code 88).
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == codeRateLimitExceeded
}

// Transient reports whether the error is a server-side failure worth retrying.
func (e *APIError) Transient() bool {
	return e.StatusCode >= 500
}

// NotFound reports whether the target status does not exist (already deleted,
// suspended, or never existed).
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound ||
		e.Code == codeNoStatusFound ||
		e.Code == codePageDoesNotExist
}

// Unauthorized reports whether the credentials were rejected outright.
// This invalidates the whole run, not just one post.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized ||
		e.Code == codeInvalidToken ||
		e.Code == codeCouldNotAuth
}

// Forbidden reports whether the request was understood but refused.
func (e *APIError) Forbidden() bool {
	return e.StatusCode == http.StatusForbidden && !e.RateLimited()
}

type errorBody struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// parseAPIError builds an APIError from a non-2xx response.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	if reset := resp.Header.Get("x-rate-limit-reset"); reset != "" {
		if unix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			apiErr.RateLimitReset = time.Unix(unix, 0)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		apiErr.Code = parsed.Errors[0].Code
		apiErr.Message = parsed.Errors[0].Message
	}

	return apiErr
}
