package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/platform/logger"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
)

const diaryEntity = "diary_entry"

// PostgresDiaryStore implements store.DiaryStore on PostgreSQL.
type PostgresDiaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDiaryStore creates a diary store on a connection or transaction
// owned by the caller. A nil logger uses slog.Default().
func NewPostgresDiaryStore(db store.DBTX, logger *slog.Logger) *PostgresDiaryStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDiaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "diary_store")),
	}
}

var _ store.DiaryStore = (*PostgresDiaryStore)(nil)

// Create implements store.DiaryStore.Create.
func (s *PostgresDiaryStore) Create(ctx context.Context, entry *domain.DiaryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("diary entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	timestamp, err := time.Parse(time.RFC3339, entry.TimestampUTC)
	if err != nil {
		return fmt.Errorf("%w: timestamp: %v", store.ErrInvalidEntity, err)
	}

	emotions, tags, interactions, err := encodeLists(entry)
	if err != nil {
		return store.NewStoreError(diaryEntity, "create", "failed to encode lists", err)
	}

	query := `
		INSERT INTO diary_entries (
			id, user_id, couple_id, entry_date, emotion, emotions, text, timestamp_utc,
			tags, interactions, word_count, had_conversation, source, schema_version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = s.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		nullableUUID(entry.CoupleID),
		entry.Date,
		string(entry.Emotion),
		emotions,
		entry.Text,
		timestamp.UTC(),
		tags,
		interactions,
		entry.WordCount,
		entry.HadConversation,
		entry.Source,
		entry.SchemaVersion,
		entry.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate diary entry id", slog.String("entry_id", entry.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrEntryExists, err)
		}
		log.Error("failed to create diary entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("user_id", entry.UserID.String()))
		return store.NewStoreError(diaryEntity, "create", "insert failed", MapError(err))
	}

	log.Debug("diary entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()),
		slog.String("date", entry.Date))
	return nil
}

// ListByUser implements store.DiaryStore.ListByUser.
func (s *PostgresDiaryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]domain.DiaryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, couple_id, entry_date, emotion, emotions, text, timestamp_utc,
			tags, interactions, word_count, had_conversation, source, schema_version, created_at
		FROM diary_entries
		WHERE user_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY timestamp_utc ASC, created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to list diary entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError(diaryEntity, "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	entries := make([]domain.DiaryEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan diary entry", slog.String("error", err.Error()))
			return nil, store.NewStoreError(diaryEntity, "list", "scan failed", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(diaryEntity, "list", "row iteration failed", MapError(err))
	}

	log.Debug("listed diary entries",
		slog.String("user_id", userID.String()),
		slog.String("from", from),
		slog.String("to", to),
		slog.Int("count", len(entries)))
	return entries, nil
}

// WithTx implements store.DiaryStore.WithTx.
func (s *PostgresDiaryStore) WithTx(tx *sql.Tx) store.DiaryStore {
	return &PostgresDiaryStore{db: tx, logger: s.logger}
}

func scanEntry(rows *sql.Rows) (domain.DiaryEntry, error) {
	var (
		entry                        domain.DiaryEntry
		coupleID                     uuid.NullUUID
		date, timestamp              time.Time
		emotion                      string
		emotions, tags, interactions []byte
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.UserID,
		&coupleID,
		&date,
		&emotion,
		&emotions,
		&entry.Text,
		&timestamp,
		&tags,
		&interactions,
		&entry.WordCount,
		&entry.HadConversation,
		&entry.Source,
		&entry.SchemaVersion,
		&entry.CreatedAt,
	); err != nil {
		return domain.DiaryEntry{}, err
	}

	if coupleID.Valid {
		id := coupleID.UUID
		entry.CoupleID = &id
	}
	entry.Date = date.Format(domain.DateLayout)
	entry.Emotion = domain.Emotion(emotion)
	entry.TimestampUTC = domain.FormatTimestamp(timestamp)

	if err := decodeList(emotions, &entry.Emotions); err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("emotions: %w", err)
	}
	if err := decodeList(tags, &entry.Tags); err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("tags: %w", err)
	}
	if err := decodeList(interactions, &entry.Interactions); err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("interactions: %w", err)
	}
	return entry, nil
}

func encodeLists(entry *domain.DiaryEntry) (emotions, tags, interactions []byte, err error) {
	if emotions, err = encodeList(entry.Emotions); err != nil {
		return nil, nil, nil, err
	}
	if tags, err = encodeList(entry.Tags); err != nil {
		return nil, nil, nil, err
	}
	if interactions, err = encodeList(entry.Interactions); err != nil {
		return nil, nil, nil, err
	}
	return emotions, tags, interactions, nil
}

// encodeList stores nil slices as an empty JSON array.
func encodeList[T any](list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	return json.Marshal(list)
}

func decodeList[T any](raw []byte, dst *[]T) error {
	*dst = []T{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Join(store.ErrInvalidEntity, err)
	}
	return nil
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
