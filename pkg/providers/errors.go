package providers

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrMissingAPIKey     = errors.New("api key is not configured")
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is a failed provider call. StatusCode is the upstream HTTP status, or
// 0 when the request never got a response.
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s search failed (HTTP %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCredentialError reports whether the failure was caused by a missing or
// rejected API key rather than a transient problem.
func (e *Error) IsCredentialError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// MissingAPIKey is reported as a 401 so callers treat it like a rejected key.
func MissingAPIKey(provider string) *Error {
	return &Error{Provider: provider, StatusCode: http.StatusUnauthorized, Err: ErrMissingAPIKey}
}
