package domain

import (
	"errors"
	"fmt"
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// LocationErrorKind classifies location resolution failures. Every kind is
// non-fatal to the caller: each must route the user to manual city
// selection, never crash.
type LocationErrorKind string

const (
	LocPermissionDenied    LocationErrorKind = "PermissionDenied"
	LocPositionUnavailable LocationErrorKind = "PositionUnavailable"
	LocTimeout             LocationErrorKind = "Timeout"
	LocInvalidCoordinates  LocationErrorKind = "InvalidCoordinates"
	LocServiceUnavailable  LocationErrorKind = "ServiceUnavailable" // IP fallback only
)

// LocationError is a failed location resolution attempt.
type LocationError struct {
	Kind LocationErrorKind
	Err  error // underlying cause, may be nil
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return "location " + string(e.Kind) + ": " + e.Err.Error()
	}
	return "location " + string(e.Kind)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// IsRetriable: transient acquisition failures are; denial and bad data are not.
func (e *LocationError) IsRetriable() bool {
	switch e.Kind {
	case LocTimeout, LocPositionUnavailable, LocServiceUnavailable:
		return true
	}
	return false
}

// NewLocationError wraps err with a failure kind.
func NewLocationError(kind LocationErrorKind, err error) *LocationError {
	return &LocationError{Kind: kind, Err: err}
}

// LocationErrorIs reports whether err is a LocationError of the given kind.
func LocationErrorIs(err error, kind LocationErrorKind) bool {
	var le *LocationError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

// APIError is a normalized backend error: HTTP status plus the
// human-readable message extracted from the response body. When the backend
// returns plain text instead of JSON, the raw text becomes the message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%d]: %s", e.StatusCode, e.Message)
}

// IsRetriable: server-side and throttling failures are worth retrying.
func (e *APIError) IsRetriable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// NetworkError represents a transport-level failure that may be retriable
type NetworkError struct {
	Op        string // Operation that failed (e.g., "connect", "read", "write")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrUnauthorized is returned on a 401 response. The session token is
	// cleared before this is surfaced; callers must re-authenticate.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConfigNotFound is returned when the configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
