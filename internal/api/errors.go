package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches *Error values for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport wraps failures to reach the backend at all.
	ErrTransport = errors.New("transport failure")
	// ErrUnknownTable is returned for admin tables the backend does not expose.
	ErrUnknownTable = errors.New("unknown admin table")
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	// Message is the backend's "message" or "error" field, empty if it sent neither.
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// AuthFailure reports whether the response was 401 or 403.
func (e *Error) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Is lets errors.Is(err, ErrUnauthorized) match authorization failures.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.AuthFailure()
}

// Reason returns the backend-provided message of err, if err is an *Error carrying one.
func Reason(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
