// Package weekpattern finds when and about what an author writes: day-of-week
// and hour-of-day histograms in the product's local time, plus keyword counts.
package weekpattern

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/rules"
)

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Pattern is the result of Analyze. TopDay is "" and TopHour nil when no
// entry has a usable timestamp.
type Pattern struct {
	DayHistogram     map[string]int `json:"day_histogram"`
	HourHistogram    map[int]int    `json:"hour_histogram"`
	KeywordHistogram map[string]int `json:"keyword_histogram"`
	TopDay           string         `json:"top_day"`
	TopHour          *int           `json:"top_hour"`
	TopKeywords      []string       `json:"top_keywords"`
}

// Params configures the analyzer
type Params struct {
	// Local time offset from UTC, in hours.
	OffsetHours int

	// Number of keywords reported in TopKeywords.
	TopKeywords int

	// Tokens shorter than this (in runes) are ignored.
	MinTokenLength int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{OffsetHours: 9, TopKeywords: 3, MinTokenLength: 2}
}

// Analyzer computes week patterns.
type Analyzer struct {
	params *Params
	zone   *time.Location
	tables *rules.Tables
}

// NewAnalyzer creates an analyzer in UTC+9 with default parameters.
func NewAnalyzer(tables *rules.Tables) *Analyzer {
	return NewAnalyzerWithParams(tables, NewDefaultParams())
}

// NewAnalyzerWithParams creates an analyzer with custom parameters.
func NewAnalyzerWithParams(tables *rules.Tables, params *Params) *Analyzer {
	return &Analyzer{
		params: params,
		zone:   time.FixedZone("local", params.OffsetHours*60*60),
		tables: tables,
	}
}

// counter is a histogram that remembers first-encounter order for tie-breaks.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// ranked returns keys by descending count; equal counts keep encounter order.
func (c *counter[K]) ranked() []K {
	keys := append([]K(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	return keys
}

// Analyze builds the histograms in input order.
func (a *Analyzer) Analyze(entries []domain.DiaryEntry) Pattern {
	days := newCounter[string]()
	hours := newCounter[int]()
	keywords := newCounter[string]()

	for _, e := range entries {
		if ts, ok := domain.ParseTimestamp(e.TimestampUTC); ok {
			local := ts.In(a.zone)
			days.add(local.Weekday().String())
			hours.add(local.Hour())
		}
		for _, k := range a.keywords(e) {
			keywords.add(k)
		}
	}

	pattern := Pattern{
		DayHistogram:     days.counts,
		HourHistogram:    hours.counts,
		KeywordHistogram: keywords.counts,
		TopKeywords:      []string{},
	}
	if ranked := days.ranked(); len(ranked) > 0 {
		pattern.TopDay = ranked[0]
	}
	if ranked := hours.ranked(); len(ranked) > 0 {
		top := ranked[0]
		pattern.TopHour = &top
	}
	ranked := keywords.ranked()
	if len(ranked) > a.params.TopKeywords {
		ranked = ranked[:a.params.TopKeywords]
	}
	pattern.TopKeywords = append(pattern.TopKeywords, ranked...)

	return pattern
}

// keywords returns the entry's tags, or tokens of its text when it has none.
func (a *Analyzer) keywords(e domain.DiaryEntry) []string {
	if len(e.Tags) > 0 {
		return e.Tags
	}
	words := wordRegex.FindAllString(strings.ToLower(e.Text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < a.params.MinTokenLength || a.tables.IsStopWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
