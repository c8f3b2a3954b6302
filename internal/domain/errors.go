package domain

import (
	"errors"
	"strings"
)

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMalformedPrice  = errors.New("malformed price in cart")
	ErrUnknownField    = errors.New("unknown draft field")
	ErrUnknownCourse   = errors.New("unknown course")
	ErrOrderNotAllowed = errors.New("order cannot be placed")
	ErrOrderClosed     = errors.New("order already confirmed")
	ErrNotConfirmed    = errors.New("order is not confirmed")
)

// ValidationError reports why a draft was rejected. Kind is ErrMissingFields
// or ErrInvalidPrice; Fields names the offending draft fields in check order.
type ValidationError struct {
	Kind   error
	Fields []string
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(kind error, fields ...string) *ValidationError {
	return &ValidationError{Kind: kind, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Unwrap lets errors.Is match the sentinel kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// IsValidation reports whether err is a recoverable draft validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidPrice)
}
