package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/duetdiary/duet-api/internal/api/middleware"
	"github.com/duetdiary/duet-api/internal/api/shared"
	"github.com/duetdiary/duet-api/internal/generation"
	"github.com/duetdiary/duet-api/internal/service"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, middleware.ErrInvalidToken),
		errors.Is(err, middleware.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrNoPartner),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	case errors.Is(err, service.ErrNarratorUnavailable):
		return http.StatusServiceUnavailable

	// Checked before provider failures: a retry loop cut off by the request
	// deadline wraps both.
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, middleware.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, middleware.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, service.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, service.ErrNoPartner):
		return "No linked partner"
	case errors.Is(err, store.ErrEntryExists):
		return "Diary entry already exists"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidEntity):
		return invalidInputMessage(err)

	case errors.Is(err, generation.ErrContentBlocked):
		return "Narrative was blocked by the content filter"
	case errors.Is(err, service.ErrNarratorUnavailable):
		return "Narrative generation is not available"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return "Narrative generation failed"

	default:
		return "An unexpected error occurred"
	}
}

// invalidInputMessage surfaces the detail of service input errors. Their
// messages are built from caller input, never from storage.
func invalidInputMessage(err error) string {
	prefix := service.ErrInvalidInput.Error() + ": "
	msg := err.Error()
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return "Invalid input: " + msg[i+len(prefix):]
	}
	return "Invalid input"
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "invalid date format"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted details. fallback replaces the generic message for
// unrecognized errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
