package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable covers transport failures, timeouts and 5xx answers.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is a 401 or 403 answer.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is a 404 answer.
	ErrNotFound = errors.New("not found")
	// ErrRejected is any other refusal, including a 2xx auth answer with
	// success=false.
	ErrRejected = errors.New("request rejected")
	// ErrBadResponse means the body could not be decoded.
	ErrBadResponse = errors.New("malformed response")
)

// APIError is a non-2xx answer from the backend. Detail is the backend's
// human-readable message when it sent one. Err is one of the sentinels
// above, so callers can match with errors.Is.
type APIError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Err, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Err, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// Detail returns the backend's message carried by err, or fallback when
// there is none.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func sentinelFor(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}
