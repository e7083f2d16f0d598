package couple

// Params defines the tunable thresholds of the couple metrics
type Params struct {
	// A jointly recorded day is "in sync" when the valence gap is at most this.
	MatchThreshold int

	// A jointly recorded day is a gap episode when the valence gap is at least this.
	GapThreshold int

	// Number of most recent common days exposed as the reporting window.
	WindowDays int

	// Minimum valence rise from a repair entry to the next one to count as success.
	RepairUplift int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MatchThreshold int
	GapThreshold   int
	WindowDays     int
	RepairUplift   int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MatchThreshold: 1,
		GapThreshold:   2,
		WindowDays:     7,
		RepairUplift:   1,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MatchThreshold > 0 {
		params.MatchThreshold = config.MatchThreshold
	}
	if config.GapThreshold > 0 {
		params.GapThreshold = config.GapThreshold
	}
	if config.WindowDays > 0 {
		params.WindowDays = config.WindowDays
	}
	if config.RepairUplift > 0 {
		params.RepairUplift = config.RepairUplift
	}

	return params
}
