package api

import (
	"net/http"

	"github.com/duetdiary/duet-api/internal/api/shared"
	"github.com/duetdiary/duet-api/internal/service"
)

// TextAnalyzer analyzes free text without storing it.
type TextAnalyzer interface {
	AnalyzeText(text string) service.TextAnalysis
}

// TextHandler serves stateless text analysis.
type TextHandler struct {
	analyzer TextAnalyzer
}

// NewTextHandler creates a TextHandler.
func NewTextHandler(analyzer TextAnalyzer) *TextHandler {
	return &TextHandler{analyzer: analyzer}
}

// AnalyzeText handles POST /api/analyze/text.
func (h *TextHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req AnalyzeTextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.analyzer.AnalyzeText(req.Text))
}
