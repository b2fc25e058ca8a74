package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package and by the ledger wraps
// exactly one of them.
var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// ValidationError describes a rejected value or a rejected operation.
type ValidationError struct {
	// Kind is ErrInvalidIdentifier or ErrInvalidAmount.
	Kind error

	// Field names the offending field ("id", "supplier_id", "price", ...).
	Field string

	// Value is the rejected value, if any.
	Value any

	// Reason is a human-readable explanation. When empty the error renders
	// as "Invalid <field>: <value>".
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("Invalid %s: %v", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// IdentifierError builds an ErrInvalidIdentifier failure with a reason.
func IdentifierError(field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:   ErrInvalidIdentifier,
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}

// IsInvalidIdentifier reports whether err wraps ErrInvalidIdentifier.
func IsInvalidIdentifier(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

// IsInvalidAmount reports whether err wraps ErrInvalidAmount.
func IsInvalidAmount(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}
