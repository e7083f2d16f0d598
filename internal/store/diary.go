package store

import (
	"context"
	"database/sql"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/google/uuid"
)

// DiaryStore defines the interface for diary entry persistence.
type DiaryStore interface {
	// Create saves a new entry. The entry is validated first.
	// Returns ErrEntryExists if an entry with the same ID exists.
	Create(ctx context.Context, entry *domain.DiaryEntry) error

	// ListByUser returns the user's entries whose date falls in [from, to]
	// (inclusive, YYYY-MM-DD), ordered by timestamp. Returns an empty slice
	// when nothing matches.
	ListByUser(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DiaryEntry, error)

	// WithTx returns a DiaryStore that runs its queries in tx.
	WithTx(tx *sql.Tx) DiaryStore
}
