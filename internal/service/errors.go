package service

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrNotFound covers both missing resources and resources owned by someone else.
	ErrNotFound = errors.New("not found")
)

// ValidationError is bad caller input, detected before anything is written.
// Error returns the human-readable reason only.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError is a uniqueness or dependency conflict with existing data.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// PersistenceError is a backing-store failure inside an atomic unit of work.
// The unit of work has been rolled back; Err is kept for logging only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s failed", e.Op) }

func (e *PersistenceError) Unwrap() error { return e.Err }
