package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrWriteFailed is returned when the backing document cannot be
	// replaced. Read failures are not surfaced as errors: an unreadable
	// document degrades to an empty collection.
	ErrWriteFailed = errors.New("store write failed")
)

// StoreError carries the context of a failed store operation: which document
// was involved, what was being done to it, and the underlying cause.
type StoreError struct {
	Path      string // Backing document path
	Operation string // The operation that failed (e.g., "marshal", "rename")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %q failed", e.Operation, e.Path)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for the given document path and
// operation, wrapping the underlying cause.
func NewStoreError(path, operation string, err error) *StoreError {
	return &StoreError{
		Path:      path,
		Operation: operation,
		Err:       err,
	}
}

// NewWriteError creates a StoreError for a failed document replacement.
// The result matches errors.Is(err, ErrWriteFailed).
func NewWriteError(path, operation string, err error) *StoreError {
	return NewStoreError(path, operation, fmt.Errorf("%w: %w", ErrWriteFailed, err))
}
