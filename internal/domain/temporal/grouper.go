// Package temporal groups diary entries by calendar day and picks the
// representative entry of each day. Every time-windowed metric goes through
// these helpers so the "last write wins per day" rule is applied uniformly.
package temporal

import (
	"slices"
	"sort"
	"time"

	"github.com/duetdiary/duet-api/internal/domain"
)

// KeyFunc derives the grouping key of an entry.
type KeyFunc func(e domain.DiaryEntry) string

// DateKey uses the entry's local calendar date, falling back to the UTC day of
// the timestamp when the date is missing.
func DateKey(e domain.DiaryEntry) string {
	if e.Date != "" {
		return e.Date
	}
	return TimestampKey(e)
}

// TimestampKey uses the first 10 characters of the UTC timestamp.
func TimestampKey(e domain.DiaryEntry) string {
	if len(e.TimestampUTC) < 10 {
		return e.TimestampUTC
	}
	return e.TimestampUTC[:10]
}

// GroupBy buckets entries by key. Entries keep their input order inside a bucket.
func GroupBy(entries []domain.DiaryEntry, key KeyFunc) map[string][]domain.DiaryEntry {
	groups := make(map[string][]domain.DiaryEntry)
	for _, e := range entries {
		k := key(e)
		groups[k] = append(groups[k], e)
	}
	return groups
}

// PickLastByTime returns the most recently authored entry, comparing
// TimestampUTC lexicographically. On an exact tie the later slice element wins.
// It returns false for an empty slice.
func PickLastByTime(entries []domain.DiaryEntry) (domain.DiaryEntry, bool) {
	if len(entries) == 0 {
		return domain.DiaryEntry{}, false
	}
	last := entries[0]
	for _, e := range entries[1:] {
		if e.TimestampUTC >= last.TimestampUTC {
			last = e
		}
	}
	return last, true
}

// LastByDay maps each day key to that day's representative entry.
func LastByDay(entries []domain.DiaryEntry, key KeyFunc) map[string]domain.DiaryEntry {
	groups := GroupBy(entries, key)
	days := make(map[string]domain.DiaryEntry, len(groups))
	for day, group := range groups {
		if last, ok := PickLastByTime(group); ok {
			days[day] = last
		}
	}
	return days
}

// SortedKeys returns the union of the keys of the given maps in ascending order.
func SortedKeys[V any](maps ...map[string]V) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedByTime returns a copy of entries ordered by ascending TimestampUTC.
// Entries with equal timestamps keep their input order. The input is untouched.
func SortedByTime(entries []domain.DiaryEntry) []domain.DiaryEntry {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampUTC < sorted[j].TimestampUTC
	})
	return sorted
}

// DaysBack returns the n calendar days ending at today (inclusive), newest first.
func DaysBack(today time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, today.AddDate(0, 0, -i).Format(domain.DateLayout))
	}
	return days
}

// LastN returns at most the final n elements of keys.
func LastN(keys []string, n int) []string {
	if len(keys) <= n {
		return slices.Clone(keys)
	}
	return slices.Clone(keys[len(keys)-n:])
}
