// Package apperr defines the error taxonomy shared by services and handlers.
// Handlers map these onto HTTP status codes; services never return raw
// infrastructure errors to the interface layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks operations referencing a user or vehicle that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbiddenTransition marks a dealership application state-machine guard
	// violation. Distinct from validation: the payload is fine, the transition is not.
	ErrForbiddenTransition = errors.New("forbidden transition")

	// ErrHashing marks a failure inside the password hashing primitive. Treated as
	// fatal for the request and not retried.
	ErrHashing = errors.New("hashing failure")

	// ErrConflict surfaces storage-layer uniqueness violations (duplicate email).
	ErrConflict = errors.New("conflict")
)

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Transition wraps ErrForbiddenTransition with the offending from/to pair.
func Transition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrForbiddenTransition, from, to)
}
