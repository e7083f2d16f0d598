package store

import (
	"context"
	"database/sql"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/google/uuid"
)

// ProfileStore defines the interface for profile persistence.
type ProfileStore interface {
	// GetByUserID returns the user's profile or ErrProfileNotFound.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// GetPartner returns the profile of the other member of the user's couple.
	// Returns ErrPartnerNotFound when the user is not paired.
	GetPartner(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Upsert creates or replaces the user's profile.
	Upsert(ctx context.Context, profile *domain.Profile) error

	// WithTx returns a ProfileStore that runs its queries in tx.
	WithTx(tx *sql.Tx) ProfileStore
}
