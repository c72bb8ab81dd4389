package api

import (
	"errors"
	"net/http"

	"github.com/shaxn3/WSTFinalProject/internal/service/roster"
)

// MapErrorToStatusCode maps roster errors to HTTP status codes based on the
// error type, never on message text.
func MapErrorToStatusCode(err error) int {
	var verr *roster.ValidationError

	switch {
	case errors.Is(err, roster.ErrMemberNotFound):
		return http.StatusNotFound

	case errors.Is(err, roster.ErrDuplicateID),
		errors.Is(err, roster.ErrDuplicateEmail),
		errors.Is(err, roster.ErrInvalidImage),
		errors.As(err, &verr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for a roster error.
// Internal failures get a generic message; their detail stays in the logs.
func GetSafeErrorMessage(err error) string {
	var verr *roster.ValidationError

	switch {
	case errors.Is(err, roster.ErrMemberNotFound):
		return "Member not found"

	case errors.Is(err, roster.ErrDuplicateID):
		return "Member ID already exists"

	case errors.Is(err, roster.ErrDuplicateEmail):
		return "Email already exists"

	case errors.Is(err, roster.ErrInvalidImage):
		return "Invalid image format"

	case errors.As(err, &verr):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}
