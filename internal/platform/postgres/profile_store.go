package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/platform/logger"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
)

const profileEntity = "profile"

const profileColumns = `user_id, couple_id, display_name, attachment_style, created_at, updated_at`

// PostgresProfileStore implements store.ProfileStore on PostgreSQL.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a profile store. A nil logger uses slog.Default().
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// GetByUserID implements store.ProfileStore.GetByUserID.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError(profileEntity, "get", "query failed", MapError(err))
	}
	return profile, nil
}

// GetPartner implements store.ProfileStore.GetPartner.
func (s *PostgresProfileStore) GetPartner(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT p.user_id, p.couple_id, p.display_name, p.attachment_style, p.created_at, p.updated_at
		FROM profiles p
		JOIN profiles me ON me.couple_id = p.couple_id
		WHERE me.user_id = $1 AND p.user_id <> $1
		ORDER BY p.created_at ASC
		LIMIT 1
	`
	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("partner not found", slog.String("user_id", userID.String()))
			return nil, store.ErrPartnerNotFound
		}
		log.Error("failed to get partner",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError(profileEntity, "get_partner", "query failed", MapError(err))
	}
	return profile, nil
}

// Upsert implements store.ProfileStore.Upsert.
func (s *PostgresProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			couple_id = EXCLUDED.couple_id,
			display_name = EXCLUDED.display_name,
			attachment_style = EXCLUDED.attachment_style,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		profile.UserID,
		nullableUUID(profile.CoupleID),
		profile.DisplayName,
		string(profile.AttachmentStyle),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return store.NewStoreError(profileEntity, "upsert", "upsert failed", MapError(err))
	}

	log.Debug("profile upserted", slog.String("user_id", profile.UserID.String()))
	return nil
}

// WithTx implements store.ProfileStore.WithTx.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{db: tx, logger: s.logger}
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var (
		profile  domain.Profile
		coupleID uuid.NullUUID
		style    string
	)
	if err := row.Scan(
		&profile.UserID,
		&coupleID,
		&profile.DisplayName,
		&style,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if coupleID.Valid {
		id := coupleID.UUID
		profile.CoupleID = &id
	}
	profile.AttachmentStyle = domain.AttachmentStyle(style)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return &profile, nil
}
