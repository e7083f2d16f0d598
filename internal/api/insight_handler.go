package api

import (
	"net/http"
	"time"

	"github.com/duetdiary/duet-api/internal/api/shared"
	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/service"
	"github.com/google/uuid"
)

// InsightHandler serves weekly report endpoints. Dates in requests are
// calendar days in the product's local zone.
type InsightHandler struct {
	insights service.InsightService
	zone     *time.Location
	now      func() time.Time
}

// NewInsightHandler creates an InsightHandler for the given UTC offset.
func NewInsightHandler(insights service.InsightService, offsetHours int) *InsightHandler {
	return &InsightHandler{
		insights: insights,
		zone:     service.LocalZone(offsetHours),
		now:      time.Now,
	}
}

// WeeklyReport handles GET /api/insights/weekly?end=YYYY-MM-DD&emotion=label.
// A missing end means today.
func (h *InsightHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	report, ok := h.buildReport(w, r, userID, r.URL.Query().Get("end"), r.URL.Query().Get("emotion"))
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// Narrative handles POST /api/insights/weekly/narrative. It builds the
// report for the requested week and returns it with the generated narrative.
func (h *InsightHandler) Narrative(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req NarrativeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	report, ok := h.buildReport(w, r, userID, req.End, req.Emotion)
	if !ok {
		return
	}

	text, err := h.insights.Narrative(r.Context(), report)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate narrative")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NarrativeResponse{Report: report, Narrative: text})
}

func (h *InsightHandler) buildReport(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	end, emotion string,
) (*service.Report, bool) {
	endDate, err := parseLocalDate(end, h.zone, h.now())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid end: invalid date format")
		return nil, false
	}

	report, err := h.insights.WeeklyReport(r.Context(), userID, endDate, domain.EmotionLabel(emotion))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build weekly report")
		return nil, false
	}
	return report, true
}
