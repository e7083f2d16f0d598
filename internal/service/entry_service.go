package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/textsignal"
	"github.com/duetdiary/duet-api/internal/platform/logger"
	"github.com/duetdiary/duet-api/internal/redact"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
)

const entryServiceName = "entry"

// CreateEntryInput is the caller-authored part of a diary entry. Derived
// fields are computed by the service.
type CreateEntryInput struct {
	// Date is the local calendar day (YYYY-MM-DD). Empty uses the local day of Timestamp.
	Date     string
	Emotion  domain.Emotion
	Emotions []domain.EmotionLabel
	Text     string
	// Timestamp is the authoring instant. Zero uses the service clock.
	Timestamp       time.Time
	HadConversation bool
	Source          string
}

// EntryService provides diary entry operations.
type EntryService interface {
	// CreateEntry normalizes the text, extracts tags, interactions and word
	// count, links the entry to the author's couple and persists it.
	CreateEntry(ctx context.Context, userID uuid.UUID, input CreateEntryInput) (*domain.DiaryEntry, error)

	// ListEntries returns the user's entries dated within [from, to].
	ListEntries(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DiaryEntry, error)
}

// Clock returns the current time.
type Clock func() time.Time

type entryServiceImpl struct {
	db        *sql.DB
	entries   store.DiaryStore
	profiles  store.ProfileStore
	extractor *textsignal.Extractor
	zone      *time.Location
	now       Clock
	logger    *slog.Logger
}

// NewEntryService creates an EntryService. offsetHours is the product's local
// time offset used to derive a missing Date. A nil clock uses time.Now.
func NewEntryService(
	db *sql.DB,
	entries store.DiaryStore,
	profiles store.ProfileStore,
	extractor *textsignal.Extractor,
	offsetHours int,
	clock Clock,
	logger *slog.Logger,
) (EntryService, error) {
	switch {
	case db == nil:
		return nil, &ServiceError{Service: entryServiceName, Operation: "create_service", Message: "db cannot be nil"}
	case entries == nil:
		return nil, &ServiceError{Service: entryServiceName, Operation: "create_service", Message: "entries store cannot be nil"}
	case profiles == nil:
		return nil, &ServiceError{Service: entryServiceName, Operation: "create_service", Message: "profiles store cannot be nil"}
	case extractor == nil:
		return nil, &ServiceError{Service: entryServiceName, Operation: "create_service", Message: "extractor cannot be nil"}
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &entryServiceImpl{
		db:        db,
		entries:   entries,
		profiles:  profiles,
		extractor: extractor,
		zone:      LocalZone(offsetHours),
		now:       clock,
		logger:    logger.With(slog.String("component", "entry_service")),
	}, nil
}

// LocalZone returns the fixed product time zone for an offset in hours.
func LocalZone(offsetHours int) *time.Location {
	return time.FixedZone("local", offsetHours*60*60)
}

// CreateEntry implements EntryService.
func (s *entryServiceImpl) CreateEntry(
	ctx context.Context,
	userID uuid.UUID,
	input CreateEntryInput,
) (*domain.DiaryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now()
	}
	date := input.Date
	if date == "" {
		date = timestamp.In(s.zone).Format(domain.DateLayout)
	}

	text := textsignal.Normalize(input.Text)
	entry, err := domain.NewDiaryEntry(userID, date, input.Emotion, text, timestamp)
	if err != nil {
		log.Warn("rejected diary entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, invalidInput("%v", err)
	}

	signals := s.extractor.Extract(text)
	entry.Tags = signals.Tags
	entry.Interactions = signals.Interactions
	entry.WordCount = signals.WordCount
	entry.Emotions = input.Emotions
	entry.HadConversation = input.HadConversation
	entry.Source = input.Source

	if err := entry.Validate(); err != nil {
		log.Warn("rejected diary entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, invalidInput("%v", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		profile, err := s.profiles.WithTx(tx).GetByUserID(ctx, userID)
		switch {
		case errors.Is(err, store.ErrProfileNotFound):
			log.Debug("creating entry without profile", slog.String("user_id", userID.String()))
		case err != nil:
			return NewServiceError(entryServiceName, "create_entry", "failed to load profile", err)
		case profile.IsPaired():
			coupleID := *profile.CoupleID
			entry.CoupleID = &coupleID
		}

		if err := s.entries.WithTx(tx).Create(ctx, entry); err != nil {
			return NewServiceError(entryServiceName, "create_entry", "failed to save entry", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create diary entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("text", redact.Text(text)))
		return nil, err
	}

	log.Info("diary entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("date", entry.Date),
		slog.Int("word_count", entry.WordCount),
		slog.Int("tags", len(entry.Tags)))

	return entry, nil
}

// ListEntries implements EntryService.
func (s *entryServiceImpl) ListEntries(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]domain.DiaryEntry, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByUser(ctx, userID, from, to)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list diary entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError(entryServiceName, "list_entries", "failed to list entries", err)
	}
	return entries, nil
}

func validateRange(from, to string) error {
	start, err := time.Parse(domain.DateLayout, from)
	if err != nil {
		return invalidInput("from must use YYYY-MM-DD")
	}
	end, err := time.Parse(domain.DateLayout, to)
	if err != nil {
		return invalidInput("to must use YYYY-MM-DD")
	}
	if end.Before(start) {
		return invalidInput("from must not be after to")
	}
	return nil
}
