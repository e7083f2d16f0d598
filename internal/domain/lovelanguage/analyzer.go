// Package lovelanguage counts which of the five love languages show up in an
// author's entries.
package lovelanguage

import (
	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/numeric"
	"github.com/duetdiary/duet-api/internal/domain/textsignal"
	"github.com/duetdiary/duet-api/internal/rules"
)

// Result holds the category counts for one author.
type Result struct {
	Categories  []string       `json:"categories"`
	Counts      map[string]int `json:"counts"`
	Percentages map[string]int `json:"percentages"`
	Dominant    string         `json:"dominant"`
}

// Analyzer classifies entry text with the love-language rules.
type Analyzer struct {
	classifier textsignal.Classifier
	categories []string
}

// NewAnalyzer creates an analyzer over the love-language rule table.
func NewAnalyzer(tables *rules.Tables) *Analyzer {
	patterns := tables.LoveLanguage()
	categories := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if _, ok := seen[p.Label]; ok {
			continue
		}
		seen[p.Label] = struct{}{}
		categories = append(categories, p.Label)
	}
	return &Analyzer{classifier: textsignal.NewRuleClassifier(patterns), categories: categories}
}

// Analyze sums pattern occurrences per category over every entry. Percentages
// use the total occurrence count as denominator; Dominant is the category with
// the most occurrences, earlier categories winning ties, or "" when nothing matched.
func (a *Analyzer) Analyze(entries []domain.DiaryEntry) Result {
	result := Result{
		Categories:  append([]string(nil), a.categories...),
		Counts:      make(map[string]int, len(a.categories)),
		Percentages: make(map[string]int, len(a.categories)),
	}
	for _, c := range a.categories {
		result.Counts[c] = 0
	}

	total := 0
	for _, e := range entries {
		for _, s := range a.classifier.Classify(e.Text) {
			result.Counts[s.Label] += int(s.Score)
			total += int(s.Score)
		}
	}

	best := 0
	for _, c := range a.categories {
		n := result.Counts[c]
		result.Percentages[c] = int(numeric.Round(numeric.Ratio(float64(n), float64(total))*100, 0))
		if n > best {
			best, result.Dominant = n, c
		}
	}
	return result
}
