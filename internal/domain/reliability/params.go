package reliability

// Params defines the thresholds of the emotion reliability scorer
type Params struct {
	// At most this many prior weeks feed the baseline.
	MaxPriorWeeks int

	// Baseline used when no prior week is available.
	NeutralBaseline float64

	// Score must leave baseline ± TrendMargin to count as a trend.
	TrendMargin float64

	// Fewer data points than this is low reliability.
	LowDataPoints int

	// Fewer data points than this is at most medium reliability.
	MediumDataPoints int

	// Average text length (runes) below this is at most medium reliability.
	MinTextLength int

	// Fewer distinct labels than PoorVariety is poor quality, fewer than FairVariety fair.
	PoorVariety int
	FairVariety int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MaxPriorWeeks    int
	NeutralBaseline  float64
	TrendMargin      float64
	LowDataPoints    int
	MediumDataPoints int
	MinTextLength    int
	PoorVariety      int
	FairVariety      int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MaxPriorWeeks:    4,
		NeutralBaseline:  5,
		TrendMargin:      0.5,
		LowDataPoints:    3,
		MediumDataPoints: 5,
		MinTextLength:    50,
		PoorVariety:      2,
		FairVariety:      4,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxPriorWeeks > 0 {
		params.MaxPriorWeeks = config.MaxPriorWeeks
	}
	if config.NeutralBaseline > 0 {
		params.NeutralBaseline = config.NeutralBaseline
	}
	if config.TrendMargin > 0 {
		params.TrendMargin = config.TrendMargin
	}
	if config.LowDataPoints > 0 {
		params.LowDataPoints = config.LowDataPoints
	}
	if config.MediumDataPoints > 0 {
		params.MediumDataPoints = config.MediumDataPoints
	}
	if config.MinTextLength > 0 {
		params.MinTextLength = config.MinTextLength
	}
	if config.PoorVariety > 0 {
		params.PoorVariety = config.PoorVariety
	}
	if config.FairVariety > 0 {
		params.FairVariety = config.FairVariety
	}

	return params
}
