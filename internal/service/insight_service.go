package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/alert"
	"github.com/duetdiary/duet-api/internal/domain/confidence"
	"github.com/duetdiary/duet-api/internal/domain/conflict"
	"github.com/duetdiary/duet-api/internal/domain/couple"
	"github.com/duetdiary/duet-api/internal/domain/lovelanguage"
	"github.com/duetdiary/duet-api/internal/domain/reliability"
	"github.com/duetdiary/duet-api/internal/domain/temporal"
	"github.com/duetdiary/duet-api/internal/domain/weekpattern"
	"github.com/duetdiary/duet-api/internal/generation"
	"github.com/duetdiary/duet-api/internal/platform/logger"
	"github.com/duetdiary/duet-api/internal/report"
	"github.com/duetdiary/duet-api/internal/rules"
	"github.com/duetdiary/duet-api/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	insightServiceName = "insight"
	daysPerWeek        = 7
)

// Report is the weekly insight report returned by InsightService.
type Report = report.Report

// InsightSettings configures InsightService.
type InsightSettings struct {
	// OffsetHours is the product's local time offset from UTC.
	OffsetHours int
	// HistoryWeeks is how many weeks before the report week feed the
	// reliability baseline.
	HistoryWeeks int
}

// InsightService builds weekly couple reports.
type InsightService interface {
	// WeeklyReport computes every metric for the 7 days ending at end
	// (inclusive, local calendar). An unpaired user gets a report whose
	// pairwise metrics hold neutral values.
	WeeklyReport(ctx context.Context, userID uuid.UUID, end time.Time, emotion domain.EmotionLabel) (*Report, error)

	// Narrative renders the report as a prompt and asks the configured
	// narrator for a short couple summary.
	Narrative(ctx context.Context, r *Report) (string, error)
}

// Analyzers bundles the analytics core used by InsightService.
type Analyzers struct {
	Couple       *couple.Engine
	Conflict     *conflict.Analyzer
	Reliability  *reliability.Scorer
	Alerts       *alert.Engine
	WeekPattern  *weekpattern.Analyzer
	LoveLanguage *lovelanguage.Analyzer
}

// NewAnalyzers builds the default analyzers over compiled rule tables.
func NewAnalyzers(tables *rules.Tables, offsetHours int) (*Analyzers, error) {
	conflictAnalyzer, err := conflict.NewAnalyzer(tables)
	if err != nil {
		return nil, err
	}

	weekParams := weekpattern.NewDefaultParams()
	weekParams.OffsetHours = offsetHours

	return &Analyzers{
		Couple:       couple.NewEngine(tables),
		Conflict:     conflictAnalyzer,
		Reliability:  reliability.NewScorer(),
		Alerts:       alert.NewEngine(),
		WeekPattern:  weekpattern.NewAnalyzerWithParams(tables, weekParams),
		LoveLanguage: lovelanguage.NewAnalyzer(tables),
	}, nil
}

type insightServiceImpl struct {
	entries   store.DiaryStore
	profiles  store.ProfileStore
	analyzers *Analyzers
	narrator  generation.Narrator
	settings  InsightSettings
	logger    *slog.Logger
}

// NewInsightService creates an InsightService. narrator may be nil, in which
// case Narrative returns ErrNarratorUnavailable.
func NewInsightService(
	entries store.DiaryStore,
	profiles store.ProfileStore,
	analyzers *Analyzers,
	narrator generation.Narrator,
	settings InsightSettings,
	logger *slog.Logger,
) (InsightService, error) {
	switch {
	case entries == nil:
		return nil, &ServiceError{Service: insightServiceName, Operation: "create_service", Message: "entries store cannot be nil"}
	case profiles == nil:
		return nil, &ServiceError{Service: insightServiceName, Operation: "create_service", Message: "profiles store cannot be nil"}
	case analyzers == nil:
		return nil, &ServiceError{Service: insightServiceName, Operation: "create_service", Message: "analyzers cannot be nil"}
	}
	if settings.HistoryWeeks < 0 {
		settings.HistoryWeeks = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &insightServiceImpl{
		entries:   entries,
		profiles:  profiles,
		analyzers: analyzers,
		narrator:  narrator,
		settings:  settings,
		logger:    logger.With(slog.String("component", "insight_service")),
	}, nil
}

// week is a 7-day window of calendar keys, newest first.
type week struct {
	start, end string
	days       []string
}

func weekEnding(end time.Time) week {
	days := temporal.DaysBack(end, daysPerWeek)
	return week{start: days[len(days)-1], end: days[0], days: days}
}

func (w week) filter(entries []domain.DiaryEntry) []domain.DiaryEntry {
	out := make([]domain.DiaryEntry, 0)
	for _, e := range entries {
		d := temporal.DateKey(e)
		if d >= w.start && d <= w.end {
			out = append(out, e)
		}
	}
	return out
}

// priorSince returns the entries of each prior week that ends on or after the
// user's first recorded day before current. Weeks from before the user started
// writing are left out, so a first week has no baseline history at all.
func priorSince(prior []week, history []domain.DiaryEntry, currentStart string) [][]domain.DiaryEntry {
	first := ""
	for _, e := range history {
		d := temporal.DateKey(e)
		if d != "" && d < currentStart && (first == "" || d < first) {
			first = d
		}
	}

	out := make([][]domain.DiaryEntry, 0, len(prior))
	if first == "" {
		return out
	}
	for _, w := range prior {
		if w.end < first {
			continue
		}
		out = append(out, w.filter(history))
	}
	return out
}

// WeeklyReport implements InsightService.
func (s *insightServiceImpl) WeeklyReport(
	ctx context.Context,
	userID uuid.UUID,
	end time.Time,
	emotion domain.EmotionLabel,
) (*Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if emotion != "" && !emotion.IsValid() {
		return nil, invalidInput("unknown emotion %q", emotion)
	}

	end = end.In(LocalZone(s.settings.OffsetHours))
	current := weekEnding(end)
	prior := make([]week, 0, s.settings.HistoryWeeks)
	for k := 1; k <= s.settings.HistoryWeeks; k++ {
		prior = append(prior, weekEnding(end.AddDate(0, 0, -daysPerWeek*k)))
	}
	historyStart := current.start
	if len(prior) > 0 {
		historyStart = prior[len(prior)-1].start
	}

	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewServiceError(insightServiceName, "weekly_report", "failed to load profile", err)
	}
	partner, err := s.profiles.GetPartner(ctx, userID)
	switch {
	case errors.Is(err, store.ErrPartnerNotFound):
		partner = nil
	case err != nil:
		return nil, NewServiceError(insightServiceName, "weekly_report", "failed to load partner", err)
	}

	var myHistory, partnerWeek []domain.DiaryEntry
	fetch, fetchCtx := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		entries, err := s.entries.ListByUser(fetchCtx, userID, historyStart, current.end)
		myHistory = entries
		return err
	})
	if partner != nil {
		fetch.Go(func() error {
			entries, err := s.entries.ListByUser(fetchCtx, partner.UserID, current.start, current.end)
			partnerWeek = entries
			return err
		})
	}
	if err := fetch.Wait(); err != nil {
		log.Error("failed to fetch entries for weekly report",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError(insightServiceName, "weekly_report", "failed to fetch entries", err)
	}
	if partnerWeek == nil {
		partnerWeek = []domain.DiaryEntry{}
	}

	myWeek := current.filter(myHistory)
	priorWeeks := priorSince(prior, myHistory, current.start)

	r := &Report{
		Period:  report.Period{Start: current.start, End: current.end},
		Me:      me,
		Partner: partner,
	}

	a := s.analyzers
	var g errgroup.Group
	g.Go(func() error {
		r.Synchrony = a.Couple.Synchrony(myWeek, partnerWeek)
		r.Gaps = a.Couple.GapEpisodes(myWeek, partnerWeek)
		r.Latency = a.Couple.ReassuranceLatency(myWeek, partnerWeek)
		return nil
	})
	g.Go(func() error {
		r.Repair = a.Couple.RepairAttempts(myWeek)
		return nil
	})
	g.Go(func() error {
		r.Conflict = a.Conflict.AnalyzeEntries(myWeek)
		return nil
	})
	g.Go(func() error {
		if emotion != "" {
			r.Reliability = a.Reliability.Score(myWeek, priorWeeks, emotion)
		}
		return nil
	})
	g.Go(func() error {
		r.WeekPattern = a.WeekPattern.Analyze(myWeek)
		return nil
	})
	g.Go(func() error {
		r.LoveLanguage = a.LoveLanguage.Analyze(myWeek)
		return nil
	})
	_ = g.Wait()

	r.Confidence = confidence.Compute(confidence.InputsFromEntries(myWeek, partnerWeek, current.days))
	r.Alerts = a.Alerts.Evaluate(alert.Input{
		Author:                  myWeek,
		Me:                      myWeek,
		Spouse:                  partnerWeek,
		Today:                   end,
		ReassuranceLatencyHours: r.Latency.Value,
	})

	log.Info("weekly report built",
		slog.String("user_id", userID.String()),
		slog.String("start", current.start),
		slog.String("end", current.end),
		slog.Bool("paired", r.Paired()),
		slog.Int("entries", len(myWeek)),
		slog.Int("partner_entries", len(partnerWeek)),
		slog.Int("alerts", len(r.Alerts)))

	return r, nil
}

// Narrative implements InsightService.
func (s *insightServiceImpl) Narrative(ctx context.Context, r *Report) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.narrator == nil {
		return "", ErrNarratorUnavailable
	}
	if r == nil {
		return "", invalidInput("report is required")
	}
	if !r.Paired() {
		return "", ErrNoPartner
	}

	prompt := report.BuildPrompt(r)
	text, err := s.narrator.Narrate(ctx, prompt)
	if err != nil {
		log.Error("narrative generation failed",
			slog.String("error", err.Error()),
			slog.String("period_end", r.Period.End))
		return "", NewServiceError(insightServiceName, "narrative", "failed to generate narrative", err)
	}

	log.Info("narrative generated",
		slog.String("period_end", r.Period.End),
		slog.Int("prompt_bytes", len(prompt)),
		slog.Int("narrative_bytes", len(text)))
	return text, nil
}
