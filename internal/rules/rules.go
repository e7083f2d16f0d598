package rules

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/duetdiary/duet-api/internal/domain"
)

// Errors returned while loading or compiling rule tables.
var (
	ErrRulesFile       = errors.New("failed to read rules file")
	ErrInvalidRules    = errors.New("invalid rule set")
	ErrInvalidPattern  = errors.New("invalid rule pattern")
	ErrUnknownCategory = errors.New("unknown rule category")
)

// Rule pairs a label with the regular expression that triggers it.
type Rule struct {
	Label   string `mapstructure:"label"   json:"label"   validate:"required"`
	Pattern string `mapstructure:"pattern" json:"pattern" validate:"required"`
}

// ConflictSet holds the keyword patterns for the four conflict categories and
// the positive-expression list used for the positive/negative ratio.
type ConflictSet struct {
	Criticism     []string `mapstructure:"criticism"     json:"criticism"`
	Contempt      []string `mapstructure:"contempt"      json:"contempt"`
	Defensiveness []string `mapstructure:"defensiveness" json:"defensiveness"`
	Stonewalling  []string `mapstructure:"stonewalling"  json:"stonewalling"`
	Positive      []string `mapstructure:"positive"      json:"positive"`
}

// Set is the raw, uncompiled rule configuration. It is what a rules file
// decodes into; any section left empty falls back to the defaults.
type Set struct {
	Tags          []Rule      `mapstructure:"tags"           json:"tags,omitempty"           validate:"dive"`
	Interactions  []Rule      `mapstructure:"interactions"   json:"interactions,omitempty"   validate:"dive"`
	AnxietyClues  []string    `mapstructure:"anxiety_clues"  json:"anxiety_clues,omitempty"  validate:"dive,required"`
	RepairSignals []string    `mapstructure:"repair_signals" json:"repair_signals,omitempty" validate:"dive,required"`
	Conflict      ConflictSet `mapstructure:"conflict"       json:"conflict"`
	LoveLanguage  []Rule      `mapstructure:"love_language"  json:"love_language,omitempty"  validate:"dive"`
	StopWords     []string    `mapstructure:"stop_words"     json:"stop_words,omitempty"`
}

// Conflict categories.
const (
	CategoryCriticism     = "criticism"
	CategoryContempt      = "contempt"
	CategoryDefensiveness = "defensiveness"
	CategoryStonewalling  = "stonewalling"
	CategoryPositive      = "positive"
)

// Pattern is a compiled rule. It is safe for concurrent use.
type Pattern struct {
	Label string
	re    *regexp.Regexp
}

// Match reports whether the pattern occurs anywhere in text.
func (p Pattern) Match(text string) bool {
	return p.re.MatchString(text)
}

// Count returns the number of non-overlapping occurrences in text.
func (p Pattern) Count(text string) int {
	return len(p.re.FindAllStringIndex(text, -1))
}

// String returns the source expression.
func (p Pattern) String() string {
	return p.re.String()
}

// MatchAny reports whether any of the patterns occurs in text.
func MatchAny(patterns []Pattern, text string) bool {
	for _, p := range patterns {
		if p.Match(text) {
			return true
		}
	}
	return false
}

// Tables is the compiled, read-only form of a Set. Accessors return copies so
// callers cannot mutate the shared tables.
type Tables struct {
	tags          []Pattern
	interactions  []Pattern
	anxietyClues  []Pattern
	repairSignals []Pattern
	conflict      map[string][]Pattern
	loveLanguage  []Pattern
	stopWords     map[string]struct{}
}

// Tags returns the tag rules in evaluation order.
func (t *Tables) Tags() []Pattern { return slices.Clone(t.tags) }

// Interactions returns the interaction rules in evaluation order.
func (t *Tables) Interactions() []Pattern { return slices.Clone(t.interactions) }

// AnxietyClues returns the patterns that open a reassurance latency window.
func (t *Tables) AnxietyClues() []Pattern { return slices.Clone(t.anxietyClues) }

// RepairSignals returns the apology, humor and affection patterns.
func (t *Tables) RepairSignals() []Pattern { return slices.Clone(t.repairSignals) }

// LoveLanguage returns the love-language rules in evaluation order.
func (t *Tables) LoveLanguage() []Pattern { return slices.Clone(t.loveLanguage) }

// Conflict returns the patterns for one conflict category.
func (t *Tables) Conflict(category string) ([]Pattern, error) {
	patterns, ok := t.conflict[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return slices.Clone(patterns), nil
}

// IsStopWord reports whether the lower-cased word is in the keyword stop list.
func (t *Tables) IsStopWord(word string) bool {
	_, ok := t.stopWords[word]
	return ok
}

// Compile validates a Set and compiles every expression case-insensitively.
// Empty sections are filled from Default first.
func Compile(set Set) (*Tables, error) {
	set = withDefaults(set)

	tables := &Tables{
		conflict:  make(map[string][]Pattern, 5),
		stopWords: make(map[string]struct{}, len(set.StopWords)),
	}

	var err error
	if tables.tags, err = compileRules(set.Tags); err != nil {
		return nil, err
	}

	if tables.interactions, err = compileRules(set.Interactions); err != nil {
		return nil, err
	}
	for _, p := range tables.interactions {
		if !domain.Interaction(p.Label).IsValid() {
			return nil, fmt.Errorf("%w: unknown interaction label %q", ErrInvalidRules, p.Label)
		}
	}

	if tables.anxietyClues, err = compileList("anxiety", set.AnxietyClues); err != nil {
		return nil, err
	}
	if tables.repairSignals, err = compileList("repair", set.RepairSignals); err != nil {
		return nil, err
	}
	if tables.loveLanguage, err = compileRules(set.LoveLanguage); err != nil {
		return nil, err
	}

	categories := map[string][]string{
		CategoryCriticism:     set.Conflict.Criticism,
		CategoryContempt:      set.Conflict.Contempt,
		CategoryDefensiveness: set.Conflict.Defensiveness,
		CategoryStonewalling:  set.Conflict.Stonewalling,
		CategoryPositive:      set.Conflict.Positive,
	}
	for category, exprs := range categories {
		if tables.conflict[category], err = compileList(category, exprs); err != nil {
			return nil, err
		}
	}

	for _, word := range set.StopWords {
		tables.stopWords[strings.ToLower(word)] = struct{}{}
	}

	return tables, nil
}

// MustCompileDefault compiles the built-in tables. The defaults are covered by
// tests, so a failure here is a programming error.
func MustCompileDefault() *Tables {
	tables, err := Compile(Default())
	if err != nil {
		// ALLOW-PANIC: built-in rule tables must compile
		panic(err)
	}
	return tables
}

func compileRules(rules []Rule) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(rules))
	for _, r := range rules {
		p, err := compilePattern(r.Label, r.Pattern)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func compileList(label string, exprs []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(exprs))
	for _, expr := range exprs {
		p, err := compilePattern(label, expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func compilePattern(label, expr string) (Pattern, error) {
	if label == "" || expr == "" {
		return Pattern{}, fmt.Errorf("%w: empty label or pattern", ErrInvalidRules)
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, label, err)
	}
	return Pattern{Label: label, re: re}, nil
}

func withDefaults(set Set) Set {
	def := Default()
	if len(set.Tags) == 0 {
		set.Tags = def.Tags
	}
	if len(set.Interactions) == 0 {
		set.Interactions = def.Interactions
	}
	if len(set.AnxietyClues) == 0 {
		set.AnxietyClues = def.AnxietyClues
	}
	if len(set.RepairSignals) == 0 {
		set.RepairSignals = def.RepairSignals
	}
	if len(set.LoveLanguage) == 0 {
		set.LoveLanguage = def.LoveLanguage
	}
	if len(set.StopWords) == 0 {
		set.StopWords = def.StopWords
	}
	if len(set.Conflict.Criticism) == 0 {
		set.Conflict.Criticism = def.Conflict.Criticism
	}
	if len(set.Conflict.Contempt) == 0 {
		set.Conflict.Contempt = def.Conflict.Contempt
	}
	if len(set.Conflict.Defensiveness) == 0 {
		set.Conflict.Defensiveness = def.Conflict.Defensiveness
	}
	if len(set.Conflict.Stonewalling) == 0 {
		set.Conflict.Stonewalling = def.Conflict.Stonewalling
	}
	if len(set.Conflict.Positive) == 0 {
		set.Conflict.Positive = def.Conflict.Positive
	}
	return set
}
