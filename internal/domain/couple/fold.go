package couple

import "github.com/duetdiary/duet-api/internal/domain"

// fold reduces items left to right into an accumulator.
func fold[T, A any](items []T, acc A, step func(A, T) A) A {
	for _, item := range items {
		acc = step(acc, item)
	}
	return acc
}

// firstAfter returns the first entry of an ascending sequence whose timestamp
// is strictly greater than ts. First match wins.
func firstAfter(sorted []domain.DiaryEntry, ts string) (domain.DiaryEntry, bool) {
	for _, e := range sorted {
		if e.TimestampUTC > ts {
			return e, true
		}
	}
	return domain.DiaryEntry{}, false
}

type pair struct {
	cur, next domain.DiaryEntry
}

// adjacentPairs returns (entries[i], entries[i+1]) for every i.
func adjacentPairs(entries []domain.DiaryEntry) []pair {
	if len(entries) < 2 {
		return nil
	}
	pairs := make([]pair, 0, len(entries)-1)
	for i := 0; i+1 < len(entries); i++ {
		pairs = append(pairs, pair{cur: entries[i], next: entries[i+1]})
	}
	return pairs
}
