package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the expected outcomes callers branch on.
var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
)

// ValidationError marks malformed input, rejected before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DataAccessError wraps an underlying store failure. It signals a retryable
// condition to the caller, as opposed to a negative lookup result.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func dataAccess(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}
