// Package reliability scores how strongly one emotion label shows up in the
// current week compared with earlier weeks, and how much the data can be trusted.
package reliability

import (
	"math"
	"unicode/utf8"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/numeric"
)

// Level is the reliability of the week's data.
type Level string

// Reliability levels.
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Quality describes the variety of emotion labels used in the week.
type Quality string

// Quality grades.
const (
	QualityPoor Quality = "poor"
	QualityFair Quality = "fair"
	QualityGood Quality = "good"
)

// Trend compares the week's score with the baseline.
type Trend string

// Trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Warnings attached to low and medium reliability.
const (
	WarningLow    = "이번 주 기록이 3개 미만이라 결과를 참고용으로만 봐 주세요."
	WarningMedium = "기록이 조금 더 쌓이거나 자세해지면 결과가 더 정확해져요."
)

// Advice, emitted in this order.
const (
	AdviceMoreEntries   = "이번 주에는 최소 5번 이상 감정을 기록해 보세요."
	AdviceLongerText    = "하루를 조금 더 자세히, 50자 이상 적어 보세요."
	AdviceMoreVariety   = "여러 감정 단어를 골라 지금 기분을 더 세밀하게 표현해 보세요."
	AdviceHappinessDown = "행복감이 평소보다 줄었어요. 함께 즐거웠던 활동을 다시 계획해 보세요."
	AdviceAnxietyUp     = "불안감이 평소보다 늘었어요. 걱정을 파트너와 나눠 보세요."
)

// Result is the reliability report for one emotion label.
type Result struct {
	Emotion    domain.EmotionLabel `json:"emotion"`
	Score      float64             `json:"score"`
	Baseline   float64             `json:"baseline"`
	Trend      Trend               `json:"trend"`
	Level      Level               `json:"level"`
	Warning    string              `json:"warning,omitempty"`
	DataPoints int                 `json:"data_points"`
	Quality    Quality             `json:"quality"`
	Advice     []string            `json:"advice"`
}

// Scorer computes Results.
type Scorer struct {
	params *Params
}

// NewScorer creates a scorer with default parameters.
func NewScorer() *Scorer {
	return NewScorerWithParams(NewDefaultParams())
}

// NewScorerWithParams creates a scorer with custom parameters.
func NewScorerWithParams(params *Params) *Scorer {
	return &Scorer{params: params}
}

// Score rates emotion over the current week against up to MaxPriorWeeks prior
// weeks. The order of prior weeks does not matter.
func (s *Scorer) Score(current []domain.DiaryEntry, prior [][]domain.DiaryEntry, emotion domain.EmotionLabel) Result {
	result := Result{
		Emotion:    emotion,
		Score:      weekScore(current, emotion),
		Baseline:   s.baseline(prior, emotion),
		DataPoints: len(current),
	}
	result.Trend = s.trend(result.Score, result.Baseline)

	avgLength := averageTextLength(current)
	switch {
	case result.DataPoints < s.params.LowDataPoints:
		result.Level, result.Warning = LevelLow, WarningLow
	case result.DataPoints < s.params.MediumDataPoints || avgLength < float64(s.params.MinTextLength):
		result.Level, result.Warning = LevelMedium, WarningMedium
	default:
		result.Level = LevelHigh
	}

	result.Quality = s.quality(distinctLabels(current))

	result.Advice = make([]string, 0, 5)
	if result.DataPoints < s.params.LowDataPoints {
		result.Advice = append(result.Advice, AdviceMoreEntries)
	}
	if result.DataPoints > 0 && avgLength < float64(s.params.MinTextLength) {
		result.Advice = append(result.Advice, AdviceLongerText)
	}
	if result.Quality == QualityPoor {
		result.Advice = append(result.Advice, AdviceMoreVariety)
	}
	if emotion == domain.LabelHappiness && result.Trend == TrendDown {
		result.Advice = append(result.Advice, AdviceHappinessDown)
	}
	if emotion == domain.LabelAnxiety && result.Trend == TrendUp {
		result.Advice = append(result.Advice, AdviceAnxietyUp)
	}

	return result
}

// weekScore returns min(10, count/entries × 10) at 1 decimal, 0 for an empty week.
func weekScore(week []domain.DiaryEntry, emotion domain.EmotionLabel) float64 {
	count := 0
	for _, e := range week {
		if e.HasLabel(emotion) {
			count++
		}
	}
	return numeric.Round(math.Min(10, numeric.Ratio(float64(count), float64(len(week)))*10), 1)
}

func (s *Scorer) baseline(prior [][]domain.DiaryEntry, emotion domain.EmotionLabel) float64 {
	if len(prior) == 0 {
		return s.params.NeutralBaseline
	}
	if len(prior) > s.params.MaxPriorWeeks {
		prior = prior[:s.params.MaxPriorWeeks]
	}
	scores := make([]float64, 0, len(prior))
	for _, week := range prior {
		scores = append(scores, weekScore(week, emotion))
	}
	return numeric.Round(numeric.Mean(scores), 2)
}

func (s *Scorer) trend(score, baseline float64) Trend {
	switch {
	case score > baseline+s.params.TrendMargin:
		return TrendUp
	case score < baseline-s.params.TrendMargin:
		return TrendDown
	default:
		return TrendStable
	}
}

func (s *Scorer) quality(distinct int) Quality {
	switch {
	case distinct < s.params.PoorVariety:
		return QualityPoor
	case distinct < s.params.FairVariety:
		return QualityFair
	default:
		return QualityGood
	}
}

func averageTextLength(week []domain.DiaryEntry) float64 {
	lengths := make([]float64, 0, len(week))
	for _, e := range week {
		lengths = append(lengths, float64(utf8.RuneCountInString(e.Text)))
	}
	return numeric.Mean(lengths)
}

func distinctLabels(week []domain.DiaryEntry) int {
	seen := make(map[domain.EmotionLabel]struct{})
	for _, e := range week {
		for _, l := range e.Emotions {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}
