package service

import (
	"errors"
	"fmt"
)

// Service-level errors surfaced to the API layer.
var (
	// ErrEmptyExport is returned when an export request matches no cards.
	// No document is produced.
	ErrEmptyExport = errors.New("no cards match the export selection")

	// ErrFileTooLarge is returned when an import payload exceeds the
	// configured size cap. Nothing is parsed or written.
	ErrFileTooLarge = errors.New("import file too large")

	// ErrMalformedImport is returned when an import payload does not parse
	// as a JSON array of card-shaped objects. Nothing is written.
	ErrMalformedImport = errors.New("malformed import file")
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
