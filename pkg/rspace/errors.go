package rspace

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for platform responses that callers branch on. They are
// matched with errors.Is through APIError.Unwrap.
var (
	// ErrConflict is wrapped when the platform rejects a write because the
	// target state conflicts, e.g. a grid cell is already occupied. Callers
	// surface it unmodified and never retry.
	ErrConflict = errors.New("rspace: conflict")
	// ErrNotFound is wrapped when the requested entity does not exist.
	ErrNotFound = errors.New("rspace: not found")
	// ErrUnauthorized is wrapped when the API key is missing or rejected.
	ErrUnauthorized = errors.New("rspace: unauthorized")
)

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rspace: http %d (request %s)", e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("rspace: http %d: %s (request %s)", e.StatusCode, e.Message, e.RequestID)
}

// Unwrap maps well-known status codes onto sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusConflict:
		return ErrConflict
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return nil
	}
}
