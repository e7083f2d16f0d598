package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/duetdiary/duet-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceErrorError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      &ServiceError{Service: "entry", Operation: "create_entry", Message: "failed to save entry", Err: errors.New("boom")},
			expected: "entry service create_entry failed: failed to save entry: boom",
		},
		{
			name:     "without underlying error",
			err:      &ServiceError{Service: "insight", Operation: "create_service", Message: "analyzers cannot be nil"},
			expected: "insight service create_service failed: analyzers cannot be nil",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestNewServiceError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	tests := []struct {
		name  string
		in    error
		check func(t *testing.T, got error)
	}{
		{
			name:  "nil stays nil",
			in:    nil,
			check: func(t *testing.T, got error) { assert.NoError(t, got) },
		},
		{
			name: "service sentinel passes through",
			in:   fmt.Errorf("%w: date", ErrInvalidInput),
			check: func(t *testing.T, got error) {
				assert.ErrorIs(t, got, ErrInvalidInput)
				var svcErr *ServiceError
				assert.False(t, errors.As(got, &svcErr))
			},
		},
		{
			name:  "store profile not found maps to service sentinel",
			in:    store.NewStoreError("profile", "get", "query failed", store.ErrProfileNotFound),
			check: func(t *testing.T, got error) { assert.Equal(t, ErrProfileNotFound, got) },
		},
		{
			name: "other errors are wrapped",
			in:   cause,
			check: func(t *testing.T, got error) {
				var svcErr *ServiceError
				require.ErrorAs(t, got, &svcErr)
				assert.Equal(t, "op", svcErr.Operation)
				assert.ErrorIs(t, got, cause)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.check(t, NewServiceError("svc", "op", "msg", tc.in))
		})
	}
}
