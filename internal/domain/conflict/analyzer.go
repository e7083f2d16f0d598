// Package conflict scores one author's text against the four Gottman conflict
// indicators (criticism, contempt, defensiveness, stonewalling) and a list of
// positive expressions.
package conflict

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/numeric"
	"github.com/duetdiary/duet-api/internal/domain/temporal"
	"github.com/duetdiary/duet-api/internal/domain/textsignal"
	"github.com/duetdiary/duet-api/internal/rules"
)

// RiskLevel classifies the average horsemen score.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendations, emitted in this order.
const (
	AdviceCriticism     = "'너는 항상' 대신 '나는 ~할 때 ~하게 느꼈어'처럼 나 전달법으로 이야기해 보세요."
	AdviceContempt      = "비꼬거나 무시하는 말 대신 고마운 점을 하루 한 가지씩 표현해 보세요."
	AdviceDefensiveness = "상대의 불만 중 내 책임인 부분을 먼저 인정해 보세요."
	AdviceStonewalling  = "감정이 벅찰 때는 20분 쉬자고 말하고, 진정된 뒤 대화를 다시 이어가세요."
	AdviceRatio         = "긍정 표현이 부정 표현보다 5배 많도록(5:1) 감사와 애정 표현을 늘려 보세요."
)

// FourFactors holds the 0..100 score of each conflict category.
type FourFactors struct {
	Criticism     int `json:"criticism"`
	Contempt      int `json:"contempt"`
	Defensiveness int `json:"defensiveness"`
	Stonewalling  int `json:"stonewalling"`
}

// Analysis is the result of Analyze.
type Analysis struct {
	FourFactors     FourFactors `json:"four_factors"`
	PositiveScore   int         `json:"positive_score"`
	NegativeScore   float64     `json:"negative_score"`
	PositiveRatio   float64     `json:"positive_ratio"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	Recommendations []string    `json:"recommendations"`
}

// Analyzer scores text with the conflict rule tables.
type Analyzer struct {
	params        *Params
	criticism     []rules.Pattern
	contempt      []rules.Pattern
	defensiveness []rules.Pattern
	stonewalling  []rules.Pattern
	positive      []rules.Pattern
}

// NewAnalyzer creates an analyzer with default parameters.
func NewAnalyzer(tables *rules.Tables) (*Analyzer, error) {
	return NewAnalyzerWithParams(tables, NewDefaultParams())
}

// NewAnalyzerWithParams creates an analyzer with custom parameters.
func NewAnalyzerWithParams(tables *rules.Tables, params *Params) (*Analyzer, error) {
	a := &Analyzer{params: params}
	targets := []struct {
		category string
		dst      *[]rules.Pattern
	}{
		{rules.CategoryCriticism, &a.criticism},
		{rules.CategoryContempt, &a.contempt},
		{rules.CategoryDefensiveness, &a.defensiveness},
		{rules.CategoryStonewalling, &a.stonewalling},
		{rules.CategoryPositive, &a.positive},
	}
	for _, target := range targets {
		patterns, err := tables.Conflict(target.category)
		if err != nil {
			return nil, fmt.Errorf("conflict analyzer: %w", err)
		}
		*target.dst = patterns
	}
	return a, nil
}

// Analyze scores a single text. Empty text yields a zero LOW analysis with no
// recommendations.
func (a *Analyzer) Analyze(text string) Analysis {
	text = textsignal.Normalize(text)
	length := utf8.RuneCountInString(text)
	if strings.TrimSpace(text) == "" {
		return Analysis{RiskLevel: RiskLow, Recommendations: []string{}}
	}

	raw := rawFactors{
		criticism:     a.score(a.criticism, text, length),
		contempt:      a.score(a.contempt, text, length),
		defensiveness: a.score(a.defensiveness, text, length),
		stonewalling:  a.score(a.stonewalling, text, length),
	}
	positive := a.score(a.positive, text, length)
	negative := numeric.Mean([]float64{raw.criticism, raw.contempt, raw.defensiveness, raw.stonewalling})

	ratio := 0.0
	if positive > 0 {
		ratio = positive / math.Max(negative, 1)
	}

	// Thresholds apply to the raw scores; only reported values are rounded.
	analysis := Analysis{
		FourFactors:   raw.rounded(),
		PositiveScore: roundScore(positive),
		NegativeScore: numeric.Round(negative, 2),
		PositiveRatio: numeric.Round(ratio, 2),
		RiskLevel:     a.risk(negative),
	}
	analysis.Recommendations = a.recommend(raw, ratio)
	return analysis
}

// AnalyzeEntries scores the concatenated text of one author's entries in
// ascending time order.
func (a *Analyzer) AnalyzeEntries(entries []domain.DiaryEntry) Analysis {
	sorted := temporal.SortedByTime(entries)
	texts := make([]string, 0, len(sorted))
	for _, e := range sorted {
		if strings.TrimSpace(e.Text) != "" {
			texts = append(texts, e.Text)
		}
	}
	return a.Analyze(strings.Join(texts, "\n"))
}

// rawFactors holds the unrounded category scores.
type rawFactors struct {
	criticism, contempt, defensiveness, stonewalling float64
}

func (r rawFactors) rounded() FourFactors {
	return FourFactors{
		Criticism:     roundScore(r.criticism),
		Contempt:      roundScore(r.contempt),
		Defensiveness: roundScore(r.defensiveness),
		Stonewalling:  roundScore(r.stonewalling),
	}
}

func roundScore(v float64) int {
	return int(numeric.Round(v, 0))
}

// score returns min(100, Σ(occurrences×weight) / length × scale).
func (a *Analyzer) score(patterns []rules.Pattern, text string, length int) float64 {
	occurrences := 0
	for _, p := range patterns {
		occurrences += p.Count(text)
	}
	raw := numeric.Ratio(float64(occurrences)*a.params.OccurrenceWeight, float64(length)) * a.params.LengthScale
	return math.Min(100, raw)
}

func (a *Analyzer) risk(avg float64) RiskLevel {
	switch {
	case avg > a.params.HighRisk:
		return RiskHigh
	case avg > a.params.MediumRisk:
		return RiskMedium
	default:
		return RiskLow
	}
}

func (a *Analyzer) recommend(f rawFactors, ratio float64) []string {
	recs := make([]string, 0, 5)
	if f.criticism > a.params.CriticismAdvice {
		recs = append(recs, AdviceCriticism)
	}
	if f.contempt > a.params.ContemptAdvice {
		recs = append(recs, AdviceContempt)
	}
	if f.defensiveness > a.params.DefensivenessAdvice {
		recs = append(recs, AdviceDefensiveness)
	}
	if f.stonewalling > a.params.StonewallingAdvice {
		recs = append(recs, AdviceStonewalling)
	}
	if ratio < a.params.MinPositiveRatio {
		recs = append(recs, AdviceRatio)
	}
	return recs
}
