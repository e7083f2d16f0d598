package alert

// Params defines the alert thresholds
type Params struct {
	// Trailing calendar days inspected by the yellow rule.
	WindowDays int

	// A day whose total word count is below this is a quiet day.
	MinDailyWords int

	// This many quiet days in the window raise a yellow alert.
	QuietDays int

	// Days walked back from today for the gap streak.
	StreakDays int

	// Valence gap that keeps the streak going.
	GapThreshold int

	// Streak hours at or above this, combined with slow reassurance, raise a red alert.
	StreakHours int

	// Reassurance latency (hours) above which the red rule can fire.
	LatencyHours float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	WindowDays    int
	MinDailyWords int
	QuietDays     int
	StreakDays    int
	GapThreshold  int
	StreakHours   int
	LatencyHours  float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		WindowDays:    7,
		MinDailyWords: 5,
		QuietDays:     5,
		StreakDays:    3,
		GapThreshold:  2,
		StreakHours:   48,
		LatencyHours:  8,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.WindowDays > 0 {
		params.WindowDays = config.WindowDays
	}
	if config.MinDailyWords > 0 {
		params.MinDailyWords = config.MinDailyWords
	}
	if config.QuietDays > 0 {
		params.QuietDays = config.QuietDays
	}
	if config.StreakDays > 0 {
		params.StreakDays = config.StreakDays
	}
	if config.GapThreshold > 0 {
		params.GapThreshold = config.GapThreshold
	}
	if config.StreakHours > 0 {
		params.StreakHours = config.StreakHours
	}
	if config.LatencyHours > 0 {
		params.LatencyHours = config.LatencyHours
	}

	return params
}
