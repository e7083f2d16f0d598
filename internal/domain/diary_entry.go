package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day layout used for DiaryEntry.Date.
const DateLayout = "2006-01-02"

// timestampMinuteLayout is ISO 8601 without seconds, as some exports write it.
const timestampMinuteLayout = "2006-01-02T15:04Z07:00"

// ParseTimestamp parses an entry timestamp in RFC 3339, also accepting the
// ISO 8601 form without seconds.
func ParseTimestamp(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, timestampMinuteLayout} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// CanonicalTimestamp rewrites value as RFC 3339 in UTC. Values that do not
// parse are returned unchanged.
func CanonicalTimestamp(value string) string {
	ts, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return ts.UTC().Format(time.RFC3339)
}

// MaxTags is the maximum number of derived tags kept on an entry.
const MaxTags = 5

// Diary entry validation errors
var (
	ErrEntryIDEmpty          = errors.New("entry ID cannot be empty")
	ErrEntryUserIDEmpty      = errors.New("entry user ID cannot be empty")
	ErrEntryDateInvalid      = errors.New("entry date must use YYYY-MM-DD")
	ErrEntryTimestampInvalid = errors.New("entry timestamp must be RFC3339 UTC")
	ErrEntryEmotionInvalid   = errors.New("invalid entry emotion")
	ErrEntryLabelInvalid     = errors.New("invalid emotion label")
	ErrEntryTooManyTags      = errors.New("entry has too many tags")
	ErrEntryDuplicateTag     = errors.New("entry tags must be unique")
	ErrEntryInteraction      = errors.New("invalid entry interaction")
	ErrEntryWordCount        = errors.New("entry word count cannot be negative")
)

// DiaryEntry is one authored record for one user on one calendar day.
// A user may write several entries on the same day.
//
// Entries are treated as immutable values once created: analytics code only
// reads them and never reorders or modifies caller-owned slices.
type DiaryEntry struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	CoupleID     *uuid.UUID     `json:"couple_id,omitempty"`
	Date         string         `json:"date"`
	Emotion      Emotion        `json:"emotion,omitempty"`
	Emotions     []EmotionLabel `json:"emotions,omitempty"`
	Text         string         `json:"text"`
	TimestampUTC string         `json:"timestamp_utc"`

	// Derived at write time by the text signal extractor.
	Tags         []string      `json:"tags"`
	Interactions []Interaction `json:"interactions"`
	WordCount    int           `json:"word_count"`

	// Provenance only.
	HadConversation bool      `json:"had_conversation"`
	Source          string    `json:"source,omitempty"`
	SchemaVersion   int       `json:"schema_version"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewDiaryEntry creates a DiaryEntry with a fresh ID and validates it.
// Derived fields are left empty; callers fill them from the text signal extractor.
func NewDiaryEntry(
	userID uuid.UUID,
	date string,
	emotion Emotion,
	text string,
	timestamp time.Time,
) (*DiaryEntry, error) {
	entry := &DiaryEntry{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		Emotion:       emotion,
		Text:          text,
		TimestampUTC:  FormatTimestamp(timestamp),
		Tags:          []string{},
		Interactions:  []Interaction{},
		SchemaVersion: CurrentSchemaVersion,
		CreatedAt:     time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// CurrentSchemaVersion is stamped on newly created entries.
const CurrentSchemaVersion = 2

// FormatTimestamp renders t as an ISO-8601 UTC instant with a Z suffix,
// which keeps lexicographic and chronological order identical.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Validate checks the entry invariants.
func (e *DiaryEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEntryIDEmpty
	}

	if e.UserID == uuid.Nil {
		return ErrEntryUserIDEmpty
	}

	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrEntryDateInvalid
	}

	if _, err := time.Parse(time.RFC3339, e.TimestampUTC); err != nil ||
		!strings.HasSuffix(e.TimestampUTC, "Z") {
		return ErrEntryTimestampInvalid
	}

	if !e.Emotion.IsValid() {
		return ErrEntryEmotionInvalid
	}

	for _, label := range e.Emotions {
		if !label.IsValid() {
			return ErrEntryLabelInvalid
		}
	}

	if len(e.Tags) > MaxTags {
		return ErrEntryTooManyTags
	}

	seen := make(map[string]struct{}, len(e.Tags))
	for _, tag := range e.Tags {
		if _, dup := seen[tag]; dup {
			return ErrEntryDuplicateTag
		}
		seen[tag] = struct{}{}
	}

	for _, interaction := range e.Interactions {
		if !interaction.IsValid() {
			return ErrEntryInteraction
		}
	}

	if e.WordCount < 0 {
		return ErrEntryWordCount
	}

	return nil
}

// HasInteraction reports whether the entry carries the given interaction label.
func (e DiaryEntry) HasInteraction(i Interaction) bool {
	for _, have := range e.Interactions {
		if have == i {
			return true
		}
	}
	return false
}

// HasLabel reports whether the entry's multi-label set contains l.
func (e DiaryEntry) HasLabel(l EmotionLabel) bool {
	for _, have := range e.Emotions {
		if have == l {
			return true
		}
	}
	return false
}
