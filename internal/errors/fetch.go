package errors

import (
	stdErrors "errors"
	"fmt"
)

// FetchError represents a failed page fetch (non-success HTTP status)
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Message, e.URL, e.StatusCode)
}

// NewFetchError creates a fetch error with a message derived from the status code
func NewFetchError(url string, statusCode int) *FetchError {
	var message string
	switch {
	case statusCode == 404:
		message = "page not found"
	case statusCode == 403:
		message = "access to page forbidden"
	case statusCode == 401:
		message = "authentication required"
	case statusCode >= 500:
		message = "server error"
	default:
		message = "unexpected response"
	}

	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsFetchError checks if error is a FetchError (even when wrapped)
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return stdErrors.As(err, &fetchErr)
}
