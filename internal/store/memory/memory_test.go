package memory

import (
	"context"
	"testing"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(t *testing.T, userID uuid.UUID, date string, ts time.Time) *domain.DiaryEntry {
	t.Helper()
	e, err := domain.NewDiaryEntry(userID, date, domain.EmotionGood, "오늘", ts)
	require.NoError(t, err)
	return e
}

func TestDiaryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewDiaryStore()
	me, other := uuid.New(), uuid.New()

	late := entryAt(t, me, "2024-01-02", time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC))
	early := entryAt(t, me, "2024-01-02", time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC))
	outside := entryAt(t, me, "2024-01-09", time.Date(2024, 1, 9, 1, 0, 0, 0, time.UTC))
	theirs := entryAt(t, other, "2024-01-02", time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC))
	for _, e := range []*domain.DiaryEntry{late, early, outside, theirs} {
		require.NoError(t, s.Create(ctx, e))
	}

	assert.ErrorIs(t, s.Create(ctx, late), store.ErrEntryExists)
	assert.ErrorIs(t, s.Create(ctx, &domain.DiaryEntry{ID: uuid.New()}), store.ErrInvalidEntity)

	got, err := s.ListByUser(ctx, me, "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)

	none, err := s.ListByUser(ctx, uuid.New(), "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.Same(t, s, s.WithTx(nil))
}

func TestProfileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewProfileStore()
	coupleID := uuid.New()
	me := &domain.Profile{UserID: uuid.New(), CoupleID: &coupleID, AttachmentStyle: domain.AttachmentAnxious}
	partner := &domain.Profile{UserID: uuid.New(), CoupleID: &coupleID, AttachmentStyle: domain.AttachmentSecure}
	single := &domain.Profile{UserID: uuid.New(), AttachmentStyle: domain.AttachmentUnknown}

	for _, p := range []*domain.Profile{me, partner, single} {
		require.NoError(t, s.Upsert(ctx, p))
	}
	assert.ErrorIs(t, s.Upsert(ctx, &domain.Profile{UserID: uuid.New(), AttachmentStyle: "clingy"}), store.ErrInvalidEntity)

	got, err := s.GetByUserID(ctx, me.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttachmentAnxious, got.AttachmentStyle)

	_, err = s.GetByUserID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	p, err := s.GetPartner(ctx, me.UserID)
	require.NoError(t, err)
	assert.Equal(t, partner.UserID, p.UserID)

	_, err = s.GetPartner(ctx, single.UserID)
	assert.ErrorIs(t, err, store.ErrPartnerNotFound)

	_, err = s.GetPartner(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrPartnerNotFound)
}
