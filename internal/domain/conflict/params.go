package conflict

// Params defines the scoring weights, risk bands and recommendation thresholds
// of the conflict analyzer.
type Params struct {
	// Points added per keyword occurrence before length normalization.
	OccurrenceWeight float64

	// Scale applied to weighted occurrences per rune of text.
	LengthScale float64

	// Average horsemen score above which risk is HIGH.
	HighRisk float64

	// Average horsemen score above which risk is MEDIUM.
	MediumRisk float64

	// Per-category scores above which a recommendation is emitted. Compared
	// against the unrounded score.
	CriticismAdvice     float64
	ContemptAdvice      float64
	DefensivenessAdvice float64
	StonewallingAdvice  float64

	// Positive ratios below this trigger the 5:1 suggestion.
	MinPositiveRatio float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	OccurrenceWeight    float64
	LengthScale         float64
	HighRisk            float64
	MediumRisk          float64
	CriticismAdvice     float64
	ContemptAdvice      float64
	DefensivenessAdvice float64
	StonewallingAdvice  float64
	MinPositiveRatio    float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		OccurrenceWeight:    10,
		LengthScale:         1000,
		HighRisk:            60,
		MediumRisk:          30,
		CriticismAdvice:     40,
		ContemptAdvice:      30,
		DefensivenessAdvice: 40,
		StonewallingAdvice:  40,
		MinPositiveRatio:    3,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.OccurrenceWeight > 0 {
		params.OccurrenceWeight = config.OccurrenceWeight
	}
	if config.LengthScale > 0 {
		params.LengthScale = config.LengthScale
	}
	if config.HighRisk > 0 {
		params.HighRisk = config.HighRisk
	}
	if config.MediumRisk > 0 {
		params.MediumRisk = config.MediumRisk
	}
	if config.CriticismAdvice > 0 {
		params.CriticismAdvice = config.CriticismAdvice
	}
	if config.ContemptAdvice > 0 {
		params.ContemptAdvice = config.ContemptAdvice
	}
	if config.DefensivenessAdvice > 0 {
		params.DefensivenessAdvice = config.DefensivenessAdvice
	}
	if config.StonewallingAdvice > 0 {
		params.StonewallingAdvice = config.StonewallingAdvice
	}
	if config.MinPositiveRatio > 0 {
		params.MinPositiveRatio = config.MinPositiveRatio
	}

	return params
}
