package couple

import (
	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/numeric"
	"github.com/duetdiary/duet-api/internal/domain/temporal"
	"github.com/duetdiary/duet-api/internal/rules"
)

// DaySample is one jointly recorded day with both representative emotions.
type DaySample struct {
	Date    string         `json:"date"`
	Me      domain.Emotion `json:"me"`
	Spouse  domain.Emotion `json:"spouse"`
	Diff    int            `json:"diff"`
	Matched bool           `json:"matched"`
}

// SynchronyResult is the share of jointly recorded days in emotional sync.
type SynchronyResult struct {
	Value   int         `json:"value"`
	Samples []DaySample `json:"samples"`
	Window  []string    `json:"window"`
}

// GapEpisodesResult counts jointly recorded days with a large valence gap.
type GapEpisodesResult struct {
	Value   int         `json:"value"`
	Samples []DaySample `json:"samples"`
	Window  []string    `json:"window"`
}

// LatencySample is one anxiety clue and, when found, the reassurance that answered it.
type LatencySample struct {
	ClueAt     string   `json:"clue_at"`
	ResponseAt string   `json:"response_at,omitempty"`
	Hours      *float64 `json:"hours"`
}

// ReassuranceLatencyResult is the mean time to reassurance over resolved clues.
type ReassuranceLatencyResult struct {
	Value   float64         `json:"value"`
	Samples []LatencySample `json:"samples"`
}

// RepairCount tallies repair attempts and how many lifted the next mood.
type RepairCount struct {
	Attempts int `json:"attempts"`
	Success  int `json:"success"`
}

// RepairSample is one detected repair attempt.
type RepairSample struct {
	At      string         `json:"at"`
	NextAt  string         `json:"next_at"`
	From    domain.Emotion `json:"from"`
	To      domain.Emotion `json:"to"`
	Success bool           `json:"success"`
}

// RepairAttemptsResult summarizes repair attempts in one author's stream.
type RepairAttemptsResult struct {
	Value   RepairCount    `json:"value"`
	Samples []RepairSample `json:"samples"`
}

// Engine computes pairwise metrics between two entry streams.
// CRITICAL: Pure functions. Same inputs => same outputs. Inputs are never mutated.
type Engine struct {
	params        *Params
	anxietyClues  []rules.Pattern
	repairSignals []rules.Pattern
}

// NewEngine creates an engine with default parameters.
func NewEngine(tables *rules.Tables) *Engine {
	return NewEngineWithParams(tables, NewDefaultParams())
}

// NewEngineWithParams creates an engine with custom parameters.
func NewEngineWithParams(tables *rules.Tables, params *Params) *Engine {
	return &Engine{
		params:        params,
		anxietyClues:  tables.AnxietyClues(),
		repairSignals: tables.RepairSignals(),
	}
}

// pairDays returns every day on which both sides have a representative entry
// with an emotion, in ascending date order. Days recorded by only one side are
// dropped, not counted as mismatches.
func (m *Engine) pairDays(me, spouse []domain.DiaryEntry) []DaySample {
	myDays := temporal.LastByDay(me, temporal.DateKey)
	spouseDays := temporal.LastByDay(spouse, temporal.DateKey)

	samples := make([]DaySample, 0)
	for _, day := range temporal.SortedKeys(myDays, spouseDays) {
		mine, okMe := myDays[day]
		theirs, okSpouse := spouseDays[day]
		if !okMe || !okSpouse {
			continue
		}
		mv, okMe := mine.Emotion.Valence()
		sv, okSpouse := theirs.Emotion.Valence()
		if !okMe || !okSpouse {
			continue
		}
		diff := numeric.Abs(mv - sv)
		samples = append(samples, DaySample{
			Date:    day,
			Me:      mine.Emotion,
			Spouse:  theirs.Emotion,
			Diff:    diff,
			Matched: diff <= m.params.MatchThreshold,
		})
	}
	return samples
}

func (m *Engine) window(samples []DaySample) []string {
	dates := make([]string, 0, len(samples))
	for _, s := range samples {
		dates = append(dates, s.Date)
	}
	return temporal.LastN(dates, m.params.WindowDays)
}

// Synchrony returns round(matched / jointly-recorded days × 100).
func (m *Engine) Synchrony(me, spouse []domain.DiaryEntry) SynchronyResult {
	samples := m.pairDays(me, spouse)

	matched := 0
	for _, s := range samples {
		if s.Matched {
			matched++
		}
	}

	return SynchronyResult{
		Value:   int(numeric.Round(numeric.Ratio(float64(matched), float64(len(samples)))*100, 0)),
		Samples: samples,
		Window:  m.window(samples),
	}
}

// GapEpisodes counts jointly recorded days whose valence gap reaches the threshold.
func (m *Engine) GapEpisodes(me, spouse []domain.DiaryEntry) GapEpisodesResult {
	paired := m.pairDays(me, spouse)

	gaps := fold(paired, make([]DaySample, 0), func(acc []DaySample, s DaySample) []DaySample {
		if s.Diff >= m.params.GapThreshold {
			return append(acc, s)
		}
		return acc
	})

	return GapEpisodesResult{
		Value:   len(gaps),
		Samples: gaps,
		Window:  m.window(paired),
	}
}

// ReassuranceLatency measures how long it takes me to answer the partner's
// anxiety clues with a reassurance-tagged entry.
//
// Each spouse entry whose text matches an anxiety clue opens a window; the
// earliest of my reassurance entries strictly later in time closes it. Clues
// without a response are kept as samples without hours and excluded from the mean.
func (m *Engine) ReassuranceLatency(me, spouse []domain.DiaryEntry) ReassuranceLatencyResult {
	responses := fold(temporal.SortedByTime(me), make([]domain.DiaryEntry, 0),
		func(acc []domain.DiaryEntry, e domain.DiaryEntry) []domain.DiaryEntry {
			if e.HasInteraction(domain.InteractionReassurance) {
				return append(acc, e)
			}
			return acc
		})

	samples := fold(temporal.SortedByTime(spouse), make([]LatencySample, 0),
		func(acc []LatencySample, clue domain.DiaryEntry) []LatencySample {
			if !rules.MatchAny(m.anxietyClues, clue.Text) {
				return acc
			}
			sample := LatencySample{ClueAt: clue.TimestampUTC}
			if response, ok := firstAfter(responses, clue.TimestampUTC); ok {
				if hours, ok := hoursBetween(clue.TimestampUTC, response.TimestampUTC); ok {
					sample.ResponseAt = response.TimestampUTC
					sample.Hours = &hours
				}
			}
			return append(acc, sample)
		})

	resolved := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.Hours != nil {
			resolved = append(resolved, *s.Hours)
		}
	}

	return ReassuranceLatencyResult{
		Value:   numeric.Round(numeric.Mean(resolved), 2),
		Samples: samples,
	}
}

// RepairAttempts scans one author's entries as adjacent (current, next) pairs.
// A repair cue in the current text is an attempt; it succeeds when the next
// entry's valence is higher by at least RepairUplift.
func (m *Engine) RepairAttempts(entries []domain.DiaryEntry) RepairAttemptsResult {
	samples := fold(adjacentPairs(temporal.SortedByTime(entries)), make([]RepairSample, 0),
		func(acc []RepairSample, p pair) []RepairSample {
			if !rules.MatchAny(m.repairSignals, p.cur.Text) {
				return acc
			}
			return append(acc, RepairSample{
				At:      p.cur.TimestampUTC,
				NextAt:  p.next.TimestampUTC,
				From:    p.cur.Emotion,
				To:      p.next.Emotion,
				Success: m.lifted(p.cur, p.next),
			})
		})

	count := RepairCount{Attempts: len(samples)}
	for _, s := range samples {
		if s.Success {
			count.Success++
		}
	}

	return RepairAttemptsResult{Value: count, Samples: samples}
}

func (m *Engine) lifted(cur, next domain.DiaryEntry) bool {
	from, okFrom := cur.Emotion.Valence()
	to, okTo := next.Emotion.Valence()
	return okFrom && okTo && to-from >= m.params.RepairUplift
}

// hoursBetween returns the 2-decimal hour difference between two entry
// timestamps.
func hoursBetween(from, to string) (float64, bool) {
	start, ok := domain.ParseTimestamp(from)
	if !ok {
		return 0, false
	}
	end, ok := domain.ParseTimestamp(to)
	if !ok {
		return 0, false
	}
	return numeric.Round(end.Sub(start).Hours(), 2), true
}
