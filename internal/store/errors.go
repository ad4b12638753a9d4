// Package store defines the persistence gateway: the interfaces the
// tutoring service uses to load and save learner state, plus the error
// taxonomy implementations map their backend failures onto.
package store

import (
	"errors"
	"fmt"
)

// Common store errors. Implementations translate backend-specific
// failures into these so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrProfileNotFound is returned when no learning profile exists for
	// a user ID. Wraps ErrNotFound.
	ErrProfileNotFound = fmt.Errorf("learning profile: %w", ErrNotFound)

	// ErrSessionNotFound is returned when no persisted session exists for
	// a session ID. Wraps ErrNotFound.
	ErrSessionNotFound = fmt.Errorf("session: %w", ErrNotFound)

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrInvalidEntity is returned when an entity fails validation
	// before it reaches the backend.
	ErrInvalidEntity = errors.New("invalid entity")
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError wraps a backend error with the operation that produced it.
type StoreError struct {
	// Op names the store operation, e.g. "profile.save".
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap supports errors.Is and errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the operation name. Returns nil if err
// is nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
