package services

import "fmt"

// Error taxonomy. Handlers map these to HTTP status codes via errors.As;
// anything unmatched surfaces as a generic 500.

// ValidationError: malformed or missing input, rejected before any mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError: the referenced user has no streak record.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// TransientStorageError: retryable storage failure (lock contention,
// serialization conflict). Retried internally with backoff; only surfaced
// once retries are exhausted.
type TransientStorageError struct {
	Err error
}

func (e *TransientStorageError) Error() string {
	return fmt.Sprintf("transient storage failure: %v", e.Err)
}

func (e *TransientStorageError) Unwrap() error { return e.Err }

// ConsistencyError: an invariant the service relies on was violated.
// Logged and surfaced, never silently repaired.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string { return e.Msg }
