// Package alert raises threshold-based warnings over the trailing days.
package alert

import (
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/numeric"
	"github.com/duetdiary/duet-api/internal/domain/temporal"
)

// Level is the severity of an alert.
type Level string

// Alert levels.
const (
	LevelYellow Level = "yellow"
	LevelRed    Level = "red"
)

// Alert codes.
const (
	CodeLowActivity = "low_activity"
	CodeGapStreak   = "gap_streak"
)

// Alert messages.
const (
	MessageLowActivity = "최근 7일 중 기록이 거의 없는 날이 많아요. 짧게라도 오늘 하루를 남겨 보세요."
	MessageGapStreak   = "며칠째 두 사람의 감정 차이가 크고 안심 응답도 늦어지고 있어요. 오늘은 먼저 안부를 물어보세요."
)

const hoursPerDay = 24

// Alert is one raised warning.
type Alert struct {
	Level   Level  `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Input is everything Evaluate looks at.
type Input struct {
	// Author is the stream whose writing activity the yellow rule checks.
	Author []domain.DiaryEntry
	Me     []domain.DiaryEntry
	Spouse []domain.DiaryEntry
	// Today is the last day of the window, in the product's local calendar.
	Today                   time.Time
	ReassuranceLatencyHours float64
}

// Engine evaluates alert rules.
type Engine struct {
	params *Params
}

// NewEngine creates an engine with default parameters.
func NewEngine() *Engine {
	return NewEngineWithParams(NewDefaultParams())
}

// NewEngineWithParams creates an engine with custom parameters.
func NewEngineWithParams(params *Params) *Engine {
	return &Engine{params: params}
}

// Evaluate runs the yellow rule, then the red rule. Both may fire.
func (m *Engine) Evaluate(in Input) []Alert {
	alerts := make([]Alert, 0, 2)

	if m.QuietDays(in.Author, in.Today) >= m.params.QuietDays {
		alerts = append(alerts, Alert{Level: LevelYellow, Code: CodeLowActivity, Message: MessageLowActivity})
	}

	if m.GapStreakHours(in.Me, in.Spouse, in.Today) >= m.params.StreakHours &&
		in.ReassuranceLatencyHours > m.params.LatencyHours {
		alerts = append(alerts, Alert{Level: LevelRed, Code: CodeGapStreak, Message: MessageGapStreak})
	}

	return alerts
}

// QuietDays counts days in the trailing window whose summed word count is
// below MinDailyWords. A day without entries sums to 0.
func (m *Engine) QuietDays(entries []domain.DiaryEntry, today time.Time) int {
	byDay := temporal.GroupBy(entries, temporal.DateKey)

	quiet := 0
	for _, day := range temporal.DaysBack(today, m.params.WindowDays) {
		words := 0
		for _, e := range byDay[day] {
			words += e.WordCount
		}
		if words < m.params.MinDailyWords {
			quiet++
		}
	}
	return quiet
}

// GapStreakHours walks back from today for at most StreakDays days and adds
// 24 hours for each consecutive jointly recorded day with a large valence gap.
// The first day that breaks the streak ends the walk.
func (m *Engine) GapStreakHours(me, spouse []domain.DiaryEntry, today time.Time) int {
	mine := temporal.LastByDay(me, temporal.DateKey)
	theirs := temporal.LastByDay(spouse, temporal.DateKey)

	hours := 0
	for _, day := range temporal.DaysBack(today, m.params.StreakDays) {
		a, okMe := mine[day]
		b, okSpouse := theirs[day]
		if !okMe || !okSpouse {
			break
		}
		av, okMe := a.Emotion.Valence()
		bv, okSpouse := b.Emotion.Valence()
		if !okMe || !okSpouse || numeric.Abs(av-bv) < m.params.GapThreshold {
			break
		}
		hours += hoursPerDay
	}
	return hours
}
