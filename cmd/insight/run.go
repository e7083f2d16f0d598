package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/textsignal"
	"github.com/duetdiary/duet-api/internal/report"
	"github.com/duetdiary/duet-api/internal/rules"
	"github.com/duetdiary/duet-api/internal/service"
	"github.com/duetdiary/duet-api/internal/store/memory"
	"github.com/google/uuid"
)

// Export is the offline input: both profiles and both entry streams.
type Export struct {
	End            string              `json:"end"`
	Emotion        domain.EmotionLabel `json:"emotion"`
	Me             domain.Profile      `json:"me"`
	Partner        *domain.Profile     `json:"partner,omitempty"`
	MyEntries      []domain.DiaryEntry `json:"my_entries"`
	PartnerEntries []domain.DiaryEntry `json:"partner_entries"`
}

// Options tunes Run.
type Options struct {
	RulesPath    string
	OffsetHours  int
	HistoryWeeks int
}

// Output is what the command prints.
type Output struct {
	Report *service.Report `json:"report"`
	Prompt string          `json:"prompt"`
}

// Run loads the export into memory stores and builds the weekly report with
// the same service the API uses. Entries without derived signals get them
// from the rule tables first.
func Run(ctx context.Context, export Export, opts Options, log *slog.Logger) (*Output, error) {
	tables, err := rules.Load(opts.RulesPath)
	if err != nil {
		return nil, err
	}

	zone := service.LocalZone(opts.OffsetHours)
	end, err := time.ParseInLocation(domain.DateLayout, export.End, zone)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", export.End, err)
	}

	profiles := memory.NewProfileStore()
	entries := memory.NewDiaryStore()
	extractor := textsignal.NewExtractor(tables)

	defaultStyle(&export.Me)
	if err := profiles.Upsert(ctx, &export.Me); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	if err := load(ctx, entries, extractor, export.MyEntries, export.Me); err != nil {
		return nil, fmt.Errorf("my_entries: %w", err)
	}
	if export.Partner != nil {
		defaultStyle(export.Partner)
		if err := profiles.Upsert(ctx, export.Partner); err != nil {
			return nil, fmt.Errorf("partner: %w", err)
		}
		if err := load(ctx, entries, extractor, export.PartnerEntries, *export.Partner); err != nil {
			return nil, fmt.Errorf("partner_entries: %w", err)
		}
	}

	analyzers, err := service.NewAnalyzers(tables, opts.OffsetHours)
	if err != nil {
		return nil, err
	}
	insights, err := service.NewInsightService(entries, profiles, analyzers, nil,
		service.InsightSettings{OffsetHours: opts.OffsetHours, HistoryWeeks: opts.HistoryWeeks}, log)
	if err != nil {
		return nil, err
	}

	r, err := insights.WeeklyReport(ctx, export.Me.UserID, end, export.Emotion)
	if err != nil {
		return nil, err
	}
	return &Output{Report: r, Prompt: report.BuildPrompt(r)}, nil
}

func load(
	ctx context.Context,
	s *memory.DiaryStore,
	extractor *textsignal.Extractor,
	entries []domain.DiaryEntry,
	owner domain.Profile,
) error {
	for i := range entries {
		e := entries[i]
		e.UserID = owner.UserID
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.TimestampUTC = domain.CanonicalTimestamp(e.TimestampUTC)
		if e.Tags == nil && e.Interactions == nil {
			e.Text = textsignal.Normalize(e.Text)
			signals := extractor.Extract(e.Text)
			e.Tags, e.Interactions, e.WordCount = signals.Tags, signals.Interactions, signals.WordCount
		}
		if err := s.Create(ctx, &e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

func defaultStyle(p *domain.Profile) {
	if p.AttachmentStyle == "" {
		p.AttachmentStyle = domain.AttachmentUnknown
	}
}
