package api

import (
	"fmt"
	"net/http"

	"github.com/voltmate/voltmate/internal/common"
)

// APIError is a non-2xx backend response. Message is the user-displayable
// text from the response {message} envelope. Unwrap maps the status code to
// a common sentinel so callers can match with errors.Is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrSlotConflict
	}
	if e.StatusCode >= 500 {
		return common.ErrorInternal
	}
	return nil
}
