package service

import (
	"github.com/duetdiary/duet-api/internal/domain/conflict"
	"github.com/duetdiary/duet-api/internal/domain/textsignal"
)

// TextAnalysis is the stateless analysis of one piece of free text.
type TextAnalysis struct {
	Signals  textsignal.Signals `json:"signals"`
	Conflict conflict.Analysis  `json:"conflict"`
}

// TextService analyzes text without storing it.
type TextService struct {
	extractor *textsignal.Extractor
	conflict  *conflict.Analyzer
}

// NewTextService creates a TextService.
func NewTextService(extractor *textsignal.Extractor, analyzer *conflict.Analyzer) *TextService {
	return &TextService{extractor: extractor, conflict: analyzer}
}

// AnalyzeText extracts signals and scores conflict patterns for text.
func (s *TextService) AnalyzeText(text string) TextAnalysis {
	text = textsignal.Normalize(text)
	return TextAnalysis{
		Signals:  s.extractor.Extract(text),
		Conflict: s.conflict.Analyze(text),
	}
}
