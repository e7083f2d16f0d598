package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duetdiary/duet-api/internal/api/middleware"
	"github.com/duetdiary/duet-api/internal/generation"
	"github.com/duetdiary/duet-api/internal/service"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"expired token", middleware.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"invalid token", fmt.Errorf("%w: bad signature", middleware.ErrInvalidToken), http.StatusUnauthorized, "Invalid token"},
		{"profile missing", service.ErrProfileNotFound, http.StatusNotFound, "Profile not found"},
		{"store not found", store.ErrEntryNotFound, http.StatusNotFound, "Resource not found"},
		{"no partner", service.ErrNoPartner, http.StatusConflict, "No linked partner"},
		{"duplicate entry", store.ErrEntryExists, http.StatusConflict, "Diary entry already exists"},
		{"invalid input", fmt.Errorf("%w: unknown emotion \"smug\"", service.ErrInvalidInput), http.StatusBadRequest, "Invalid input: unknown emotion \"smug\""},
		{"invalid entity", fmt.Errorf("%w: check constraint", store.ErrInvalidEntity), http.StatusBadRequest, "Invalid input"},
		{"content blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity, "Narrative was blocked by the content filter"},
		{"narrator missing", service.ErrNarratorUnavailable, http.StatusServiceUnavailable, "Narrative generation is not available"},
		{"provider exhausted", fmt.Errorf("%w: 503", generation.ErrTransientFailure), http.StatusBadGateway, "Narrative generation failed"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "Request timed out"},
		{"retries cut off by deadline", fmt.Errorf("%w: %w", generation.ErrTransientFailure, context.DeadlineExceeded), http.StatusGatewayTimeout, "Request timed out"},
		{"unknown", errors.New("pq: password authentication failed"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.wantMessage, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestHandleAPIErrorFallback(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/entries", nil)

	HandleAPIError(w, r, errors.New("connection refused to 10.0.0.5:5432"), "Failed to list entries")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to list entries", decodeError(t, w))
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
