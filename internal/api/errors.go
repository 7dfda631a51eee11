package api

import (
	"fmt"
	"net/http"

	"github.com/THANGADHIWAN/focal/internal/errors"
)

// APIError is the error returned for any non-2xx backend response. It
// augments the failure with the parsed error body, the server status, and
// the offending request's method and URL, so callers can branch on Status.
type APIError struct {
	Status  int    // HTTP status code
	Method  string // request method
	URL     string // request URL
	Message string // server-provided detail message, if any
	Body    []byte // raw response body for diagnostics
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: server returned status %d", e.Method, e.URL, e.Status)
}

// IsNotFound reports whether err is a backend 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}

// IsClientError reports whether err is a backend 4xx response.
func IsClientError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 400 && apiErr.Status < 500
	}
	return false
}

// IsConnectivity reports whether err is a transport-level failure
// (DNS, refused, timeout) rather than an HTTP response. Used by the
// connection test: any HTTP response, even 4xx, means the server is
// reachable.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var ee *errors.EnhancedError
	if errors.As(err, &ee) {
		return ee.Category == errors.CategoryNetwork || ee.Category == errors.CategoryTimeout
	}
	return false
}

// UserMessage derives the user-facing failure string for err with the
// precedence: server-provided detail, then the error's own message, then
// the fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
