package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/duetdiary/duet-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is raised when an insert repeats a primary key or a
	// unique index value (e.g., an entry ID that is already stored)
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is raised when a row references a missing parent
	foreignKeyViolationCode = "23503"

	// checkViolationCode is raised by the CHECK constraints on emotion,
	// attachment style and word count
	checkViolationCode = "23514"

	// notNullViolationCode is raised when a required column is NULL
	notNullViolationCode = "23502"
)

// MapError maps a database error to the matching store error.
// The original error is wrapped as well, so errors.Is matches both the store
// sentinel and the driver error. Every store in this package passes query and
// exec failures through it before wrapping them in a store.StoreError.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	// Single-row lookups that found nothing
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	// Constraint violations reported by PostgreSQL
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	// Anything else (connection loss, timeouts) is returned unchanged
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
// The diary store uses it to turn a repeated entry ID into store.ErrEntryExists.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsCheckConstraintViolation reports whether err is a PostgreSQL check constraint violation.
// This occurs when a row carries a value outside the enumerations enforced by
// the migrations, for example an unknown emotion.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}
