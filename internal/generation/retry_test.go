package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCallWithRetry(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}
	transient := errors.New("503 unavailable")

	tests := []struct {
		name      string
		results   []error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", results: []error{nil}, wantCalls: 1},
		{name: "succeeds after retry", results: []error{transient, nil}, wantCalls: 2},
		{name: "gives up after max retries", results: []error{transient, transient, transient}, wantCalls: 3, wantErr: ErrTransientFailure},
		{name: "blocked is permanent", results: []error{fmt.Errorf("%w: safety", ErrContentBlocked)}, wantCalls: 1, wantErr: ErrContentBlocked},
		{name: "invalid response is permanent", results: []error{ErrInvalidResponse}, wantCalls: 1, wantErr: ErrInvalidResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			calls := 0
			text, err := CallWithRetry(context.Background(), policy, discard, func(ctx context.Context) (string, error) {
				err := tc.results[calls]
				calls++
				if err != nil {
					return "", err
				}
				return "done", nil
			})

			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, text)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "done", text)
			}
		})
	}
}

func TestCallWithRetryCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxRetries: 5, BaseDelay: time.Hour}

	_, err := CallWithRetry(ctx, policy, discard, func(ctx context.Context) (string, error) {
		cancel()
		return "", errors.New("timeout")
	})

	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallWithRetryDeadline(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	policy := RetryPolicy{MaxRetries: 5, BaseDelay: time.Hour}

	_, err := CallWithRetry(ctx, policy, discard, func(ctx context.Context) (string, error) {
		return "", errors.New("503 unavailable")
	})

	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallWithRetryKeepsLastError(t *testing.T) {
	t.Parallel()

	lastErr := errors.New("503 unavailable")

	_, err := CallWithRetry(context.Background(), RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}, discard,
		func(ctx context.Context) (string, error) {
			return "", lastErr
		})

	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.ErrorIs(t, err, lastErr)
}

func TestNewRetryPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RetryPolicy{MaxRetries: 3, BaseDelay: 2 * time.Second}, NewRetryPolicy(-1, 0))
	assert.Equal(t, RetryPolicy{MaxRetries: 0, BaseDelay: 5 * time.Second}, NewRetryPolicy(0, 5))
}
