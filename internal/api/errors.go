package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/domain/browse"
	"github.com/lexcards/lexcards-api/internal/platform/backup"
	"github.com/lexcards/lexcards-api/internal/service"
	"github.com/lexcards/lexcards-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Payload bounds
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge

	// Bad request errors
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidOwner),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, browse.ErrUnknownBucket),
		errors.Is(err, service.ErrMalformedImport),
		errors.Is(err, backup.ErrMalformedSnapshot),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, backup.ErrSnapshotNotFound),
		errors.Is(err, service.ErrEmptyExport):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Store unreachable: recoverable, the client may retry
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return "Import file too large (limit: 2 MiB)"

	case errors.Is(err, service.ErrMalformedImport):
		return "Import file is not a valid JSON card list"

	case errors.Is(err, backup.ErrMalformedSnapshot):
		return "Backup snapshot is not a valid JSON card list"

	case errors.Is(err, service.ErrEmptyExport):
		return "No cards match the export selection"

	case errors.Is(err, domain.ErrInvalidUsername):
		return "Invalid username: use only lowercase letters, digits and underscores"

	case errors.Is(err, browse.ErrUnknownBucket):
		return "Invalid read filter: use all, never, 1+, 5+ or 10+"

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, backup.ErrSnapshotNotFound):
		return "Backup snapshot not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrDuplicate):
		return "A card with the same question and answer already exists"

	case errors.Is(err, store.ErrUnavailable):
		return "Storage is temporarily unavailable; please retry"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid card data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validator errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CardRequest.Exam' Error:Field validation for 'Exam' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
