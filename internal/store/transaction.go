package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/duetdiary/duet-api/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
// It receives the context and the open transaction; returning an error rolls
// the transaction back, returning nil lets RunInTransaction commit it.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction executes fn within a database transaction on db.
//
// The transaction is committed when fn returns nil and rolled back when fn
// returns an error or panics. A panic is re-raised after the rollback so the
// caller's recovery behaves as if no transaction were involved.
//
// Failures to begin or commit wrap ErrTransactionFailed. Errors returned by fn
// are passed through unchanged so callers can match store sentinels such as
// ErrEntryExists.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	// Use the request-scoped logger when one is attached
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	// Roll back on panic, then propagate the panic to the caller
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			// ALLOW-PANIC: propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			// Keep the original error matchable with errors.Is
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rbErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}

	log.Debug("transaction committed")
	return nil
}
