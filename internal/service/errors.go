package service

import (
	"errors"
	"fmt"

	"github.com/duetdiary/duet-api/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer maps
// them to HTTP status codes.
var (
	// ErrInvalidInput indicates that caller-supplied data failed validation.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProfileNotFound indicates that the user has not created a profile yet.
	// API layer should map this to HTTP 404 Not Found.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoPartner indicates that the operation needs a linked partner and the
	// user has none. API layer should map this to HTTP 409 Conflict.
	ErrNoPartner = errors.New("user has no linked partner")

	// ErrNarratorUnavailable indicates that no narrative generator is configured.
	ErrNarratorUnavailable = errors.New("narrative generation is not configured")
)

// ServiceError wraps unexpected failures with the operation that produced them.
type ServiceError struct {
	// Service is the service name (e.g., "entry", "insight")
	Service string
	// Operation is the operation that failed (e.g., "create_entry", "weekly_report")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with operation context. Service sentinels are
// returned as-is, and store not-found errors for profiles are translated to
// ErrProfileNotFound.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{ErrInvalidInput, ErrProfileNotFound, ErrNoPartner, ErrNarratorUnavailable} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, store.ErrProfileNotFound) {
		return ErrProfileNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
