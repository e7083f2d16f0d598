package api

import (
	"net/http"

	"github.com/duetdiary/duet-api/internal/api/shared"
	"github.com/duetdiary/duet-api/internal/service"
)

// EntryHandler serves diary entry endpoints.
type EntryHandler struct {
	entries service.EntryService
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entries service.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// CreateEntry handles POST /api/entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.entries.CreateEntry(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create entry")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// ListEntries handles GET /api/entries?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	entries, err := h.entries.ListEntries(r.Context(), userID, from, to)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list entries")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EntryListResponse{From: from, To: to, Entries: entries})
}
