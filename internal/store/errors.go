package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// The entity-specific errors below wrap it (e.g., ErrProfileNotFound), so
	// errors.Is(err, ErrNotFound) matches all of them.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., an entry with an ID that is already stored).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or the database rejects it on a check or foreign-key
	// constraint. Check the wrapped error for the specific validation detail.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrEntryNotFound indicates that the requested diary entry does not exist.
	ErrEntryNotFound = fmt.Errorf("%w: diary entry", ErrNotFound)

	// ErrProfileNotFound indicates that the user has no profile.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrPartnerNotFound indicates that the user is not linked to a partner.
	// Services treat it as "unpaired" rather than as a failure.
	ErrPartnerNotFound = fmt.Errorf("%w: partner", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEntryExists indicates that a diary entry with the same ID already exists.
	ErrEntryExists = fmt.Errorf("%w: diary entry", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and every entity-specific error that
// wraps it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
// This includes the generic ErrDuplicate and ErrEntryExists.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
// Implementations return it for unexpected database failures; expected
// conditions use the sentinels above so callers can branch on them.
type StoreError struct {
	Entity    string // The entity type (e.g., "diary_entry", "profile")
	Operation string // The operation that failed (e.g., "create", "list")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
