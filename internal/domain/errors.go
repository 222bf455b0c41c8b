package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed or contradictory search input.
	ErrValidation = errors.New("validation failed")
	// ErrStorage signals a storage query failure.
	ErrStorage = errors.New("storage unavailable")
	// ErrNotFound signals a missing venue.
	ErrNotFound = errors.New("not found")
)

// ValidationError is a client fault naming the offending field.
// It is raised before any I/O and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-specific validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError is a dependency fault from the relational collaborator.
// Retry policy belongs to the transport layer, not this engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage.Error(), e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return ErrStorage }

// NewStorageError wraps a query execution failure with the operation name.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
