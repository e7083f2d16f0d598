package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy controls how provider calls are retried.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is doubled after every failed attempt and jittered to 50-100%.
	BaseDelay time.Duration
}

// NewRetryPolicy builds a policy from configuration values, replacing
// out-of-range values with defaults (3 retries, 2 seconds).
func NewRetryPolicy(maxRetries, delaySeconds int) RetryPolicy {
	if maxRetries < 0 {
		maxRetries = 3
	}
	if delaySeconds < 1 {
		delaySeconds = 2
	}
	return RetryPolicy{MaxRetries: maxRetries, BaseDelay: time.Duration(delaySeconds) * time.Second}
}

// IsPermanent reports whether err should not be retried.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrContentBlocked) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrInvalidConfig)
}

// CallWithRetry runs call until it succeeds, fails permanently, runs out of
// attempts or ctx is done. Exhausted retries and cancellation wrap
// ErrTransientFailure.
func CallWithRetry(
	ctx context.Context,
	policy RetryPolicy,
	log *slog.Logger,
	call func(ctx context.Context) (string, error),
) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		log.DebugContext(ctx, "calling language model",
			slog.Int("attempt", attemptNum),
			slog.Int("max_attempts", policy.MaxRetries+1))

		text, err := call(ctx)
		if err == nil {
			return text, nil
		}

		log.WarnContext(ctx, "language model call failed",
			slog.Int("attempt", attemptNum),
			slog.String("error", err.Error()))

		if IsPermanent(err) {
			return "", err
		}
		if attempt >= policy.MaxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %w",
				ErrTransientFailure, policy.MaxRetries, err)
		}

		backoff := float64(policy.BaseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrTransientFailure, ctx.Err())
		}
	}
}
