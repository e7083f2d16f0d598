// Package memory provides in-process DiaryStore and ProfileStore
// implementations for offline tools. Transactions are not supported; WithTx
// returns the same store.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
)

// DiaryStore keeps entries in memory.
type DiaryStore struct {
	mu      sync.RWMutex
	entries []domain.DiaryEntry
}

var _ store.DiaryStore = (*DiaryStore)(nil)

// NewDiaryStore creates an empty DiaryStore.
func NewDiaryStore() *DiaryStore {
	return &DiaryStore{}
}

// Create implements store.DiaryStore.
func (s *DiaryStore) Create(ctx context.Context, entry *domain.DiaryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == entry.ID {
			return store.ErrEntryExists
		}
	}
	s.entries = append(s.entries, *entry)
	return nil
}

// ListByUser implements store.DiaryStore.
func (s *DiaryStore) ListByUser(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DiaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DiaryEntry, 0)
	for _, e := range s.entries {
		if e.UserID == userID && e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.DiaryEntry) int {
		switch {
		case a.TimestampUTC < b.TimestampUTC:
			return -1
		case a.TimestampUTC > b.TimestampUTC:
			return 1
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	})
	return out, nil
}

// WithTx implements store.DiaryStore.
func (s *DiaryStore) WithTx(tx *sql.Tx) store.DiaryStore {
	return s
}

// ProfileStore keeps profiles in memory.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates an empty ProfileStore.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[uuid.UUID]domain.Profile)}
}

// GetByUserID implements store.ProfileStore.
func (s *ProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return &p, nil
}

// GetPartner implements store.ProfileStore.
func (s *ProfileStore) GetPartner(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	me, ok := s.profiles[userID]
	if !ok || !me.IsPaired() {
		return nil, store.ErrPartnerNotFound
	}
	for id, p := range s.profiles {
		if id != userID && p.CoupleID != nil && *p.CoupleID == *me.CoupleID {
			return &p, nil
		}
	}
	return nil, store.ErrPartnerNotFound
}

// Upsert implements store.ProfileStore.
func (s *ProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = *profile
	return nil
}

// WithTx implements store.ProfileStore.
func (s *ProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return s
}
