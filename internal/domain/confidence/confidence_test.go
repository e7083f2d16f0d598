package confidence

import (
	"testing"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Inputs
		want Score
	}{
		{"all factors full", Inputs{DaysActive: 7, AvgWordCount: 12, Coverage: 1}, Score{1, LabelHigh}},
		{"two active days", Inputs{DaysActive: 2, AvgWordCount: 12, Coverage: 1}, Score{0.29, LabelLow}},
		{"weakest link is words", Inputs{DaysActive: 7, AvgWordCount: 6, Coverage: 1}, Score{0.5, LabelMedium}},
		{"inputs above range are clamped", Inputs{DaysActive: 30, AvgWordCount: 100, Coverage: 3}, Score{1, LabelHigh}},
		{"negative inputs are clamped", Inputs{DaysActive: -1, AvgWordCount: 12, Coverage: 1}, Score{0, LabelLow}},
		{"zero coverage", Inputs{DaysActive: 7, AvgWordCount: 12}, Score{0, LabelLow}},
		{"medium upper edge", Inputs{DaysActive: 7, AvgWordCount: 12, Coverage: 0.66}, Score{0.66, LabelMedium}},
		{"high lower edge", Inputs{DaysActive: 7, AvgWordCount: 12, Coverage: 0.67}, Score{0.67, LabelHigh}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Compute(tc.in)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got.Value, 0.0)
			assert.LessOrEqual(t, got.Value, 1.0)
		})
	}
}

func TestInputsFromEntries(t *testing.T) {
	t.Parallel()

	days := []string{"2024-01-03", "2024-01-02", "2024-01-01"}
	me := []domain.DiaryEntry{
		{Date: "2024-01-01", WordCount: 10},
		{Date: "2024-01-01", WordCount: 20},
		{Date: "2024-01-02", WordCount: 6},
		{Date: "2023-12-31", WordCount: 100}, // outside the window
	}
	spouse := []domain.DiaryEntry{
		{Date: "2024-01-02", WordCount: 3},
		{Date: "2024-01-03", WordCount: 3},
	}

	got := InputsFromEntries(me, spouse, days)
	assert.Equal(t, Inputs{DaysActive: 2, AvgWordCount: 12, Coverage: 0.33}, got)
}

func TestInputsFromEntriesEmpty(t *testing.T) {
	t.Parallel()

	got := InputsFromEntries(nil, nil, []string{"2024-01-01"})
	assert.Equal(t, Inputs{}, got)
	assert.Equal(t, Score{0, LabelLow}, Compute(got))
}
