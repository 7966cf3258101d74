package mdsdk

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/imroc/req/v3"
)

var (
	// sdk common
	ErrNoAPIKey  = errors.New("sdk: api key missing")
	ErrNoBaseURL = errors.New("sdk: base url missing")

	// mapped from HTTP 401/403
	ErrAuthFailed   = errors.New("sdk: authentication failed, check your API key with `mdlm configure`")
	ErrAccessDenied = errors.New("sdk: access denied, your API key does not have permission")
)

// APIError is a non-2xx response from the markdownlm API. The server reports
// failures as `{"error": "..."}`.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Message)
}

// VersionConflictError is returned when an update carries a stale expected
// version: someone else changed the document since it was last synced.
type VersionConflictError struct {
	DocID           string
	ExpectedVersion int64
	ActualVersion   int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on %s: local version %d != server version %d",
		e.DocID, e.ExpectedVersion, e.ActualVersion)
}

// handleAPIError is a helper function that handles the common error pattern
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s %w", operation, requestErr)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", operation, ErrAuthFailed)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", operation, ErrAccessDenied)
	}

	// got a response, but api returned an error
	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok && apiErr.Message != "" {
			apiErr.Status = resp.StatusCode
			return fmt.Errorf("%s: %w", operation, apiErr)
		}

		// non-JSON error body, keep a short excerpt
		return fmt.Errorf("%s: %w", operation, NewAPIError(resp.StatusCode, excerpt(resp.String(), 200)))
	}

	return nil
}

func excerpt(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
