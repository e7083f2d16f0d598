package api

import (
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/service"
)

// CreateEntryRequest is the body of POST /api/entries.
type CreateEntryRequest struct {
	Date            string     `json:"date"             validate:"omitempty,datetime=2006-01-02"`
	Emotion         string     `json:"emotion"          validate:"omitempty,oneof=great good neutral bad terrible"`
	Emotions        []string   `json:"emotions"         validate:"omitempty,dive,required"`
	Text            string     `json:"text"             validate:"max=10000"`
	Timestamp       *time.Time `json:"timestamp"`
	HadConversation bool       `json:"had_conversation"`
	Source          string     `json:"source"           validate:"omitempty,max=32"`
}

func (req CreateEntryRequest) toInput() service.CreateEntryInput {
	input := service.CreateEntryInput{
		Date:            req.Date,
		Emotion:         domain.Emotion(req.Emotion),
		Text:            req.Text,
		HadConversation: req.HadConversation,
		Source:          req.Source,
	}
	if req.Timestamp != nil {
		input.Timestamp = req.Timestamp.UTC()
	}
	if len(req.Emotions) > 0 {
		input.Emotions = make([]domain.EmotionLabel, len(req.Emotions))
		for i, label := range req.Emotions {
			input.Emotions[i] = domain.EmotionLabel(label)
		}
	}
	return input
}

// EntryListResponse is the body of GET /api/entries.
type EntryListResponse struct {
	From    string              `json:"from"`
	To      string              `json:"to"`
	Entries []domain.DiaryEntry `json:"entries"`
}

// NarrativeRequest is the body of POST /api/insights/weekly/narrative.
type NarrativeRequest struct {
	End     string `json:"end"     validate:"omitempty,datetime=2006-01-02"`
	Emotion string `json:"emotion"`
}

// NarrativeResponse pairs the weekly report with its narrative.
type NarrativeResponse struct {
	Report    *service.Report `json:"report"`
	Narrative string          `json:"narrative"`
}

// AnalyzeTextRequest is the body of POST /api/analyze/text.
type AnalyzeTextRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}
