package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
)

type listCall struct {
	userID   uuid.UUID
	from, to string
}

// mockDiaryStore is a function-field store.DiaryStore. ListByUser may be
// called concurrently.
type mockDiaryStore struct {
	CreateFn     func(ctx context.Context, entry *domain.DiaryEntry) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DiaryEntry, error)

	mu    sync.Mutex
	lists []listCall
}

func (m *mockDiaryStore) Create(ctx context.Context, entry *domain.DiaryEntry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	return nil
}

func (m *mockDiaryStore) ListByUser(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DiaryEntry, error) {
	m.mu.Lock()
	m.lists = append(m.lists, listCall{userID: userID, from: from, to: to})
	m.mu.Unlock()
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, from, to)
	}
	return []domain.DiaryEntry{}, nil
}

func (m *mockDiaryStore) WithTx(tx *sql.Tx) store.DiaryStore { return m }

func (m *mockDiaryStore) listCalls() []listCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]listCall(nil), m.lists...)
}

// mockProfileStore is a function-field store.ProfileStore.
type mockProfileStore struct {
	GetByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	GetPartnerFn  func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpsertFn      func(ctx context.Context, profile *domain.Profile) error
}

func (m *mockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, store.ErrProfileNotFound
}

func (m *mockProfileStore) GetPartner(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.GetPartnerFn != nil {
		return m.GetPartnerFn(ctx, userID)
	}
	return nil, store.ErrPartnerNotFound
}

func (m *mockProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileStore) WithTx(tx *sql.Tx) store.ProfileStore { return m }
