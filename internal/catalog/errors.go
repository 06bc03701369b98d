package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// FailureKind is the fixed taxonomy every remote failure is classified into.
// The kind decides the recovery path: auth failures poison the session,
// everything else falls back for the current call only.
type FailureKind string

const (
	// KindAuthExpired means the service reported the credential as expired.
	KindAuthExpired FailureKind = "auth-expired"
	// KindAuthInvalid means the service rejected the credential (HTTP 403).
	KindAuthInvalid FailureKind = "auth-invalid"
	// KindTimeout means the request exceeded its deadline.
	KindTimeout FailureKind = "timeout"
	// KindBadRequest means the service rejected the request itself (HTTP 400).
	KindBadRequest FailureKind = "bad-request"
	// KindNotFound means the requested record does not exist (HTTP 404).
	KindNotFound FailureKind = "not-found"
	// KindUnknown covers every other failure.
	KindUnknown FailureKind = "unknown"
)

// APIError is a classified catalog service failure. Op names the operation
// that failed ("search" or "volume") so callers can report it.
type APIError struct {
	Op         string
	Kind       FailureKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("catalog %s: %s: %s", e.Op, e.Kind, e.Message)
}

// AuthFailure reports whether this failure should mark the session expired.
func (e *APIError) AuthFailure() bool {
	return e.Kind == KindAuthExpired || e.Kind == KindAuthInvalid
}

// KindOf extracts the failure kind from an error chain.
// Unclassified errors report KindUnknown.
func KindOf(err error) FailureKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsAuthFailure reports whether err is a classified credential failure.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.AuthFailure()
}

// classifyStatus maps an HTTP error status plus the service's error message
// into the failure taxonomy. The message substrings are the ones the service
// is known to emit for credential problems.
func classifyStatus(op string, status int, message string) *APIError {
	kind := KindUnknown
	switch {
	case strings.Contains(message, "API key expired"),
		strings.Contains(message, "API key not valid"),
		strings.Contains(strings.ToLower(message), "expired"):
		kind = KindAuthExpired
	case status == http.StatusForbidden:
		kind = KindAuthInvalid
	case status == http.StatusBadRequest:
		kind = KindBadRequest
	case status == http.StatusNotFound:
		kind = KindNotFound
	}

	return &APIError{Op: op, Kind: kind, StatusCode: status, Message: message}
}

// classifyTransport maps a transport-level error (no HTTP response) into
// the failure taxonomy. Deadline overruns become Timeout, the rest Unknown.
func classifyTransport(op string, err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Op: op, Kind: KindTimeout, Message: err.Error()}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &APIError{Op: op, Kind: KindTimeout, Message: err.Error()}
	}
	return &APIError{Op: op, Kind: KindUnknown, Message: err.Error()}
}
