package api

import (
	"context"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/service"
	"github.com/google/uuid"
)

type mockEntryService struct {
	CreateEntryFn func(ctx context.Context, userID uuid.UUID, input service.CreateEntryInput) (*domain.DiaryEntry, error)
	ListEntriesFn func(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DiaryEntry, error)
}

func (m *mockEntryService) CreateEntry(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateEntryInput,
) (*domain.DiaryEntry, error) {
	return m.CreateEntryFn(ctx, userID, input)
}

func (m *mockEntryService) ListEntries(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]domain.DiaryEntry, error) {
	return m.ListEntriesFn(ctx, userID, from, to)
}

type mockInsightService struct {
	WeeklyReportFn func(ctx context.Context, userID uuid.UUID, end time.Time, emotion domain.EmotionLabel) (*service.Report, error)
	NarrativeFn    func(ctx context.Context, r *service.Report) (string, error)
}

func (m *mockInsightService) WeeklyReport(
	ctx context.Context,
	userID uuid.UUID,
	end time.Time,
	emotion domain.EmotionLabel,
) (*service.Report, error) {
	return m.WeeklyReportFn(ctx, userID, end, emotion)
}

func (m *mockInsightService) Narrative(ctx context.Context, r *service.Report) (string, error) {
	return m.NarrativeFn(ctx, r)
}

type textAnalyzerFunc func(text string) service.TextAnalysis

func (f textAnalyzerFunc) AnalyzeText(text string) service.TextAnalysis { return f(text) }
