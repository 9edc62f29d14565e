package clockify

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned before any request is sent when no key is set.
var ErrMissingAPIKey = errors.New("missing Clockify API key: set CLOCKIFY_API_KEY or send an X-Api-Key header")

// APIError is a non-2xx response from the Clockify API.
// Body holds the raw upstream response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("clockify API error (status %d): %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is an upstream 401 or 403.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// StatusCode extracts the upstream status from err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
