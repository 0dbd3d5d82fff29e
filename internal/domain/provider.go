package domain

import (
	"github.com/google/wire"

	"tripmind/internal/config"
	"tripmind/internal/domain/conversation"
	"tripmind/internal/domain/itinerary"
	"tripmind/internal/domain/planner"
	"tripmind/internal/domain/preference"
	"tripmind/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Conversation domain
	conversation.NewService,

	// User domain
	user.NewService,

	// Preference memory
	ProvidePreferenceService,

	// Itinerary persistence + synthesis
	itinerary.NewService,
	ProvideSynthesizer,

	// Dialogue engine
	ProvidePlannerConfig,
	ProvideSessionStore,
	planner.NewService,
)

func ProvidePreferenceService(cfg *config.Config, repo preference.SignalRepository) *preference.Service {
	return preference.NewService(repo, cfg.PreferenceDecayHalfLifeDays)
}

func ProvideSynthesizer(cfg *config.Config) *itinerary.Synthesizer {
	weights := itinerary.Weights{
		Rating:        cfg.ScoreRatingWeight,
		Popularity:    cfg.ScorePopularityWeight,
		UserFit:       cfg.ScoreUserFitWeight,
		Duration:      cfg.ScoreDurationWeight,
		TravelPenalty: cfg.ScoreTravelPenaltyWeight,
	}
	return itinerary.NewSynthesizer(weights, cfg.TravelSpeedKmh, cfg.DayStartHour, cfg.BudgetTolerancePct)
}

func ProvidePlannerConfig(cfg *config.Config) planner.Config {
	return planner.Config{
		ClarificationCap:   cfg.ClarificationCap,
		DefaultBudgetVND:   cfg.DefaultBudgetVND,
		DefaultTripDays:    cfg.DefaultTripDays,
		DefaultDestination: cfg.DefaultDestination,
		FlightOrigin:       cfg.FlightOrigin,
	}
}

func ProvideSessionStore(cfg *config.Config) *planner.SessionStore {
	return planner.NewSessionStore(cfg.SessionTTL)
}
