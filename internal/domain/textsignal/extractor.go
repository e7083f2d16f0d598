// Package textsignal turns free diary text into tags, interaction labels and a
// word count. It runs once per entry at write time; the results are persisted
// with the entry and never recomputed on read.
package textsignal

import (
	"strings"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/rules"
	"golang.org/x/text/unicode/norm"
)

// Signals is the output of Extract.
type Signals struct {
	Tags         []string             `json:"tags"`
	Interactions []domain.Interaction `json:"interactions"`
	WordCount    int                  `json:"word_count"`
}

// LabeledScore is one label produced by a Classifier together with its weight.
// For the rule classifier the score is the number of pattern occurrences.
type LabeledScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier maps text to labeled scores. Rule tables implement it today; a
// trained model can replace them behind the same interface.
type Classifier interface {
	Classify(text string) []LabeledScore
}

// RuleClassifier classifies text with an ordered list of compiled patterns.
// Only labels that match at least once are returned, in rule order.
type RuleClassifier struct {
	patterns []rules.Pattern
}

// NewRuleClassifier creates a classifier over the given patterns.
func NewRuleClassifier(patterns []rules.Pattern) *RuleClassifier {
	return &RuleClassifier{patterns: patterns}
}

// Classify implements Classifier.
func (c *RuleClassifier) Classify(text string) []LabeledScore {
	text = Normalize(text)
	scores := make([]LabeledScore, 0, len(c.patterns))
	index := make(map[string]int, len(c.patterns))
	for _, p := range c.patterns {
		n := p.Count(text)
		if n == 0 {
			continue
		}
		if i, ok := index[p.Label]; ok {
			scores[i].Score += float64(n)
			continue
		}
		index[p.Label] = len(scores)
		scores = append(scores, LabeledScore{Label: p.Label, Score: float64(n)})
	}
	return scores
}

// Extractor derives Signals from text using tag and interaction classifiers.
type Extractor struct {
	tags         Classifier
	interactions Classifier
}

// NewExtractor builds an Extractor from compiled rule tables.
func NewExtractor(tables *rules.Tables) *Extractor {
	return &Extractor{
		tags:         NewRuleClassifier(tables.Tags()),
		interactions: NewRuleClassifier(tables.Interactions()),
	}
}

// NewExtractorWithClassifiers builds an Extractor from arbitrary classifiers.
func NewExtractorWithClassifiers(tags, interactions Classifier) *Extractor {
	return &Extractor{tags: tags, interactions: interactions}
}

// Extract evaluates every rule independently against text. A label appears at
// most once regardless of how often its pattern matches; tags are capped at
// domain.MaxTags in rule order.
func (x *Extractor) Extract(text string) Signals {
	signals := Signals{
		Tags:         []string{},
		Interactions: []domain.Interaction{},
		WordCount:    WordCount(text),
	}

	for _, s := range x.tags.Classify(text) {
		if len(signals.Tags) == domain.MaxTags {
			break
		}
		signals.Tags = append(signals.Tags, s.Label)
	}

	for _, s := range x.interactions.Classify(text) {
		signals.Interactions = append(signals.Interactions, domain.Interaction(s.Label))
	}

	return signals
}

// WordCount counts whitespace-delimited non-empty tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Normalize returns text in Unicode NFC so decomposed Hangul matches the rules.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
