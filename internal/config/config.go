package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for backwards compatibility with envs package
var globalConfig *Config

// Config holds all environment backed configuration for tripmind.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Completion provider (OpenAI-compatible)
	CompletionBaseURL string        `env:"COMPLETION_BASE_URL" envDefault:"https://api.openai.com/v1"`
	CompletionAPIKey  string        `env:"COMPLETION_API_KEY"`
	CompletionModel   string        `env:"COMPLETION_MODEL" envDefault:"gpt-4o-mini"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`

	// Place search provider
	PlacesBaseURL string        `env:"PLACES_BASE_URL" envDefault:"https://maps.googleapis.com/maps/api/place"`
	PlacesAPIKey  string        `env:"PLACES_API_KEY"`
	PlacesTimeout time.Duration `env:"PLACES_TIMEOUT" envDefault:"15s"`

	// Hotel / flight search provider
	TravelSearchBaseURL string        `env:"TRAVEL_SEARCH_BASE_URL" envDefault:"https://serpapi.com"`
	TravelSearchAPIKey  string        `env:"TRAVEL_SEARCH_API_KEY"`
	TravelSearchTimeout time.Duration `env:"TRAVEL_SEARCH_TIMEOUT" envDefault:"20s"`

	// Dialogue engine
	ClarificationCap   int    `env:"CLARIFICATION_CAP" envDefault:"3"`
	DefaultBudgetVND   int64  `env:"DEFAULT_BUDGET_VND" envDefault:"5000000"`
	DefaultTripDays    int    `env:"DEFAULT_TRIP_DAYS" envDefault:"3"`
	DefaultDestination string `env:"DEFAULT_DESTINATION" envDefault:"Đà Nẵng"`
	FlightOrigin       string `env:"FLIGHT_ORIGIN" envDefault:"Hà Nội"`

	// Itinerary synthesis
	DayStartHour       int     `env:"DAY_START_HOUR" envDefault:"9"`
	TravelSpeedKmh     float64 `env:"TRAVEL_SPEED_KMH" envDefault:"30"`
	BudgetTolerancePct float64 `env:"BUDGET_TOLERANCE_PCT" envDefault:"0.10"`

	// Scoring weights
	ScoreRatingWeight        float64 `env:"SCORE_RATING_WEIGHT" envDefault:"0.30"`
	ScorePopularityWeight    float64 `env:"SCORE_POPULARITY_WEIGHT" envDefault:"0.20"`
	ScoreUserFitWeight       float64 `env:"SCORE_USER_FIT_WEIGHT" envDefault:"0.25"`
	ScoreDurationWeight      float64 `env:"SCORE_DURATION_WEIGHT" envDefault:"0.15"`
	ScoreTravelPenaltyWeight float64 `env:"SCORE_TRAVEL_PENALTY_WEIGHT" envDefault:"0.10"`

	// Preference memory
	PreferenceDecayHalfLifeDays float64 `env:"PREFERENCE_DECAY_HALF_LIFE_DAYS" envDefault:"0"`

	// Session context store
	SessionTTL                  time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweepIntervalMinutes int           `env:"SESSION_SWEEP_INTERVAL_MINUTES" envDefault:"10"`

	// Candidate pool cache
	CandidateCacheSize int           `env:"CANDIDATE_CACHE_SIZE" envDefault:"128"`
	CandidateCacheTTL  time.Duration `env:"CANDIDATE_CACHE_TTL" envDefault:"15m"`

	// Observability / Logging
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"tripmind"`
	Environment string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.CompletionBaseURL); err != nil {
		return nil, fmt.Errorf("invalid COMPLETION_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.PlacesBaseURL); err != nil {
		return nil, fmt.Errorf("invalid PLACES_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.TravelSearchBaseURL); err != nil {
		return nil, fmt.Errorf("invalid TRAVEL_SEARCH_BASE_URL: %w", err)
	}

	if cfg.ClarificationCap < 0 {
		return nil, fmt.Errorf("CLARIFICATION_CAP must not be negative")
	}
	if cfg.TravelSpeedKmh <= 0 {
		return nil, fmt.Errorf("TRAVEL_SPEED_KMH must be positive")
	}
	if cfg.DayStartHour < 0 || cfg.DayStartHour > 23 {
		return nil, fmt.Errorf("DAY_START_HOUR must be between 0 and 23")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	// Update global singleton for backwards compatibility
	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance for backwards compatibility.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last reloaded
// Deprecated: Use GetGlobal().EnvReloadedAt instead
func GetEnvReloadedAt() time.Time {
	if globalConfig != nil {
		return globalConfig.EnvReloadedAt
	}
	return time.Time{}
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
