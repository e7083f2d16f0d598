// Package confidence rates how much the week's metrics can be trusted. The
// index is a weakest-link minimum, so one thin factor caps the whole score.
package confidence

import (
	"math"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/numeric"
	"github.com/duetdiary/duet-api/internal/domain/temporal"
)

// Label is the human-readable confidence band.
type Label string

// Confidence bands.
const (
	LabelLow    Label = "낮음"
	LabelMedium Label = "보통"
	LabelHigh   Label = "높음"
)

const (
	fullWeekDays  = 7
	fullWordCount = 12
	lowCutoff     = 0.34
	mediumCutoff  = 0.67
)

// Inputs are the three factors of the index.
type Inputs struct {
	DaysActive   int     `json:"days_active"`
	AvgWordCount float64 `json:"avg_word_count"`
	Coverage     float64 `json:"coverage"`
}

// Score is the confidence index in [0,1] at 2 decimals.
type Score struct {
	Value float64 `json:"value"`
	Label Label   `json:"label"`
}

// Compute returns round(min(days/7, words/12, coverage) × 100) / 100 with every
// factor clamped to [0,1].
func Compute(in Inputs) Score {
	value := math.Min(
		numeric.Clamp(float64(in.DaysActive)/fullWeekDays, 0, 1),
		math.Min(
			numeric.Clamp(in.AvgWordCount/fullWordCount, 0, 1),
			numeric.Clamp(in.Coverage, 0, 1),
		),
	)
	value = numeric.Round(value, 2)
	return Score{Value: value, Label: labelFor(value)}
}

func labelFor(v float64) Label {
	switch {
	case v < lowCutoff:
		return LabelLow
	case v < mediumCutoff:
		return LabelMedium
	default:
		return LabelHigh
	}
}

// InputsFromEntries derives the factors for me over the given day keys:
// distinct active days of me, mean word count of my entries on those days, and
// coverage as jointly recorded days over days either side recorded.
func InputsFromEntries(me, spouse []domain.DiaryEntry, days []string) Inputs {
	inWindow := make(map[string]struct{}, len(days))
	for _, d := range days {
		inWindow[d] = struct{}{}
	}

	mine := temporal.GroupBy(within(me, inWindow), temporal.DateKey)
	theirs := temporal.GroupBy(within(spouse, inWindow), temporal.DateKey)

	words := make([]float64, 0)
	for _, entries := range mine {
		for _, e := range entries {
			words = append(words, float64(e.WordCount))
		}
	}

	joint := 0
	either := temporal.SortedKeys(mine, theirs)
	for _, d := range either {
		_, a := mine[d]
		_, b := theirs[d]
		if a && b {
			joint++
		}
	}

	return Inputs{
		DaysActive:   len(mine),
		AvgWordCount: numeric.Round(numeric.Mean(words), 2),
		Coverage:     numeric.Round(numeric.Ratio(float64(joint), float64(len(either))), 2),
	}
}

func within(entries []domain.DiaryEntry, days map[string]struct{}) []domain.DiaryEntry {
	out := make([]domain.DiaryEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := days[temporal.DateKey(e)]; ok {
			out = append(out, e)
		}
	}
	return out
}
