package domain

// Emotion is the single-choice mood of a diary entry on a 5-point ordered scale.
// The empty value means the author did not pick a mood.
type Emotion string

// Emotion values, ordered from most negative to most positive.
const (
	EmotionNone     Emotion = ""
	EmotionTerrible Emotion = "terrible"
	EmotionBad      Emotion = "bad"
	EmotionNeutral  Emotion = "neutral"
	EmotionGood     Emotion = "good"
	EmotionGreat    Emotion = "great"
)

var emotionValence = map[Emotion]int{
	EmotionTerrible: -2,
	EmotionBad:      -1,
	EmotionNeutral:  0,
	EmotionGood:     1,
	EmotionGreat:    2,
}

// Valence maps the emotion to its signed value in -2..+2.
// The second return value is false when the emotion is absent or unknown.
func (e Emotion) Valence() (int, bool) {
	v, ok := emotionValence[e]
	return v, ok
}

// IsValid reports whether e is one of the five scale values or absent.
func (e Emotion) IsValid() bool {
	if e == EmotionNone {
		return true
	}
	_, ok := emotionValence[e]
	return ok
}

// EmotionLabel is a member of the unordered multi-label emotion taxonomy.
// It is distinct from Emotion and only feeds reliability scoring.
type EmotionLabel string

// Emotion taxonomy labels.
const (
	LabelHappiness  EmotionLabel = "happiness"
	LabelLove       EmotionLabel = "love"
	LabelGratitude  EmotionLabel = "gratitude"
	LabelCalm       EmotionLabel = "calm"
	LabelSurprise   EmotionLabel = "surprise"
	LabelSadness    EmotionLabel = "sadness"
	LabelAnger      EmotionLabel = "anger"
	LabelAnxiety    EmotionLabel = "anxiety"
	LabelLoneliness EmotionLabel = "loneliness"
	LabelTiredness  EmotionLabel = "tiredness"
)

// EmotionLabels returns the taxonomy in display order.
func EmotionLabels() []EmotionLabel {
	return []EmotionLabel{
		LabelHappiness, LabelLove, LabelGratitude, LabelCalm, LabelSurprise,
		LabelSadness, LabelAnger, LabelAnxiety, LabelLoneliness, LabelTiredness,
	}
}

// IsValid reports whether l belongs to the taxonomy.
func (l EmotionLabel) IsValid() bool {
	for _, known := range EmotionLabels() {
		if l == known {
			return true
		}
	}
	return false
}

// Interaction is a derived label describing how an entry relates to the partner.
type Interaction string

// The closed set of interaction labels.
const (
	InteractionReassurance  Interaction = "안심신호"
	InteractionRepair       Interaction = "수리시도"
	InteractionConfirmation Interaction = "확인요청"
	InteractionPlan         Interaction = "약속"
)

// IsValid reports whether i is one of the known interaction labels.
func (i Interaction) IsValid() bool {
	switch i {
	case InteractionReassurance, InteractionRepair, InteractionConfirmation, InteractionPlan:
		return true
	default:
		return false
	}
}
