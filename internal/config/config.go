package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"       validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig holds the secret used to verify bearer tokens issued by the
// account service.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// LLMConfig selects and configures the narrative generator.
type LLMConfig struct {
	Provider          string `mapstructure:"provider"            validate:"required,oneof=gemini openai"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key"      validate:"required_if=Provider gemini"`
	OpenAIAPIKey      string `mapstructure:"openai_api_key"      validate:"required_if=Provider openai"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// AnalyticsConfig tunes the insight computations.
type AnalyticsConfig struct {
	// RulesPath points to an optional YAML/JSON/TOML rule file. Empty uses the built-in rules.
	RulesPath string `mapstructure:"rules_path"`
	// TimezoneOffsetHours is the local calendar used for "today" and week patterns.
	TimezoneOffsetHours int `mapstructure:"timezone_offset_hours" validate:"gte=-12,lte=14"`
	// ReliabilityHistoryWeeks is how many prior weeks feed the reliability baseline.
	ReliabilityHistoryWeeks int `mapstructure:"reliability_history_weeks" validate:"gte=0,lte=4"`
}
