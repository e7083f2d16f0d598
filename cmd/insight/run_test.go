package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func sampleExport() Export {
	coupleID := uuid.New()
	return Export{
		End:     "2024-01-07",
		Emotion: domain.LabelHappiness,
		Me:      domain.Profile{UserID: uuid.New(), CoupleID: &coupleID, AttachmentStyle: domain.AttachmentAnxious},
		Partner: &domain.Profile{UserID: uuid.New(), CoupleID: &coupleID, AttachmentStyle: domain.AttachmentSecure},
		MyEntries: []domain.DiaryEntry{{
			Date: "2024-01-01", Emotion: domain.EmotionGood,
			Emotions:     []domain.EmotionLabel{domain.LabelHappiness},
			Text:         "괜찮아, 내가 있잖아",
			Interactions: []domain.Interaction{domain.InteractionReassurance},
			TimestampUTC: "2024-01-01T05:00:00Z",
		}},
		PartnerEntries: []domain.DiaryEntry{{
			Date: "2024-01-01", Emotion: domain.EmotionGood,
			Text: "너무 불안해", TimestampUTC: "2024-01-01T00:00:00Z",
		}},
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	out, err := Run(context.Background(), sampleExport(), Options{OffsetHours: 9, HistoryWeeks: 4}, quiet)

	require.NoError(t, err)
	assert.True(t, out.Report.Paired())
	assert.Equal(t, "2024-01-01", out.Report.Period.Start)
	assert.Equal(t, 100, out.Report.Synchrony.Value)
	assert.Equal(t, 5.0, out.Report.Latency.Value)
	assert.Contains(t, out.Prompt, "2024-01-01 ~ 2024-01-07")
	assert.Contains(t, out.Prompt, "나: anxious")

	_, err = json.Marshal(out)
	assert.NoError(t, err)
}

func TestRunAcceptsMinutePrecisionTimestamps(t *testing.T) {
	t.Parallel()

	export := sampleExport()
	export.MyEntries[0].TimestampUTC = "2024-01-01T05:00Z"
	export.PartnerEntries[0].TimestampUTC = "2024-01-01T00:00Z"

	out, err := Run(context.Background(), export, Options{OffsetHours: 9, HistoryWeeks: 4}, quiet)

	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Report.Latency.Value)
	require.Len(t, out.Report.Latency.Samples, 1)
	assert.Equal(t, "2024-01-01T05:00:00Z", out.Report.Latency.Samples[0].ResponseAt)
}

func TestRunWithoutPartner(t *testing.T) {
	t.Parallel()

	export := sampleExport()
	export.Partner = nil

	out, err := Run(context.Background(), export, Options{OffsetHours: 9}, quiet)

	require.NoError(t, err)
	assert.False(t, out.Report.Paired())
	assert.Equal(t, 0.0, out.Report.Latency.Value)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(e *Export)
		opts   Options
	}{
		{name: "bad end", mutate: func(e *Export) { e.End = "01/07/2024" }},
		{name: "bad entry date", mutate: func(e *Export) { e.MyEntries[0].Date = "yesterday" }},
		{name: "missing user", mutate: func(e *Export) { e.Me.UserID = uuid.Nil }},
		{name: "unknown emotion", mutate: func(e *Export) { e.Emotion = "smug" }},
		{name: "missing rules file", mutate: func(e *Export) {}, opts: Options{RulesPath: "/nonexistent/rules.yaml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			export := sampleExport()
			tc.mutate(&export)

			out, err := Run(context.Background(), export, tc.opts, quiet)

			assert.Error(t, err)
			assert.Nil(t, out)
		})
	}
}
