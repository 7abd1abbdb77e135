package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai: API error %d: %s", e.StatusCode, e.Body)
}

// IsAuthError reports whether err is an authentication/authorization
// rejection from the provider. Never worth retrying.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRateLimited reports whether the provider rejected the call for
// exceeding its rate limits.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsTransient reports whether err is expected to succeed on retry:
// 5xx responses, network failures and timeouts. Caller cancellation
// is not transient.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	// Anything without an API status is a transport-level failure.
	return true
}
