package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{
	"user_id", "couple_id", "display_name", "attachment_style", "created_at", "updated_at",
}

func TestProfileStoreGetByUserID(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	coupleID := uuid.New()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		wantErr error
		check   func(t *testing.T, p *domain.Profile)
	}{
		{
			name: "paired profile",
			rows: sqlmock.NewRows(profileRowColumns).
				AddRow(userID.String(), coupleID.String(), "지민", "anxious", now, now),
			check: func(t *testing.T, p *domain.Profile) {
				assert.Equal(t, userID, p.UserID)
				require.NotNil(t, p.CoupleID)
				assert.Equal(t, coupleID, *p.CoupleID)
				assert.Equal(t, "지민", p.DisplayName)
				assert.Equal(t, domain.AttachmentAnxious, p.AttachmentStyle)
				assert.True(t, p.IsPaired())
			},
		},
		{
			name: "unpaired profile",
			rows: sqlmock.NewRows(profileRowColumns).
				AddRow(userID.String(), nil, "", "unknown", now, now),
			check: func(t *testing.T, p *domain.Profile) {
				assert.Nil(t, p.CoupleID)
				assert.False(t, p.IsPaired())
			},
		},
		{
			name:    "missing profile",
			rows:    sqlmock.NewRows(profileRowColumns),
			wantErr: store.ErrProfileNotFound,
		},
		{
			name: "unknown attachment style",
			rows: sqlmock.NewRows(profileRowColumns).
				AddRow(userID.String(), nil, "", "clingy", now, now),
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, profiles, mock := newMock(t)
			mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
				WithArgs(userID).
				WillReturnRows(tc.rows)

			got, err := profiles.GetByUserID(context.Background(), userID)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				tc.check(t, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileStoreGetPartner(t *testing.T) {
	t.Parallel()

	t.Run("partner found", func(t *testing.T) {
		t.Parallel()
		_, profiles, mock := newMock(t)
		userID, partnerID, coupleID := uuid.New(), uuid.New(), uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery("FROM profiles p\\s+JOIN profiles me").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(profileRowColumns).
				AddRow(partnerID.String(), coupleID.String(), "서연", "secure", now, now))

		got, err := profiles.GetPartner(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, partnerID, got.UserID)
		assert.Equal(t, domain.AttachmentSecure, got.AttachmentStyle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not paired", func(t *testing.T) {
		t.Parallel()
		_, profiles, mock := newMock(t)
		mock.ExpectQuery("FROM profiles p").WillReturnError(sql.ErrNoRows)

		got, err := profiles.GetPartner(context.Background(), uuid.New())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrPartnerNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestProfileStoreUpsert(t *testing.T) {
	t.Parallel()

	t.Run("upserts valid profile", func(t *testing.T) {
		t.Parallel()
		_, profiles, mock := newMock(t)
		profile := &domain.Profile{
			UserID:          uuid.New(),
			DisplayName:     "지민",
			AttachmentStyle: domain.AttachmentAvoidant,
		}
		mock.ExpectExec("INSERT INTO profiles (.+) ON CONFLICT \\(user_id\\) DO UPDATE").
			WithArgs(profile.UserID, nil, "지민", "avoidant", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, profiles.Upsert(context.Background(), profile))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid profile", func(t *testing.T) {
		t.Parallel()
		_, profiles, mock := newMock(t)

		err := profiles.Upsert(context.Background(), &domain.Profile{UserID: uuid.New(), AttachmentStyle: "x"})

		assert.ErrorIs(t, err, domain.ErrInvalidAttachmentStyle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
