package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"tripmind/internal/config"
	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/planner"
	"tripmind/internal/infrastructure/completion"
	"tripmind/internal/infrastructure/crontab"
	"tripmind/internal/infrastructure/database"
	"tripmind/internal/infrastructure/database/repository"
	"tripmind/internal/infrastructure/database/transaction"
	"tripmind/internal/infrastructure/logger"
	"tripmind/internal/infrastructure/places"
	"tripmind/internal/infrastructure/retrieval"
	"tripmind/internal/infrastructure/travelsearch"
	"tripmind/internal/utils/httpclients"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db, "tripmind."); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideCompletionClient wires the chat completion provider client.
func ProvideCompletionClient(cfg *config.Config) *completion.Client {
	client := httpclients.NewClient("completion")
	client.SetTimeout(cfg.CompletionTimeout)
	return completion.NewClient(client, cfg)
}

// ProvidePlacesClient wires the place search provider client.
func ProvidePlacesClient(cfg *config.Config) *places.Client {
	client := httpclients.NewClient("places")
	client.SetTimeout(cfg.PlacesTimeout)
	return places.NewClient(client, cfg)
}

// ProvideTravelSearchClient wires the hotel/flight search provider client.
func ProvideTravelSearchClient(cfg *config.Config) *travelsearch.Client {
	client := httpclients.NewClient("travelsearch")
	client.SetTimeout(cfg.TravelSearchTimeout)
	return travelsearch.NewClient(client, cfg)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Provider clients
	ProvideCompletionClient,
	ProvidePlacesClient,
	ProvideTravelSearchClient,
	wire.Bind(new(planner.CompletionClient), new(*completion.Client)),

	// Candidate retrieval
	retrieval.NewCachedRetriever,
	wire.Bind(new(candidate.Retriever), new(*retrieval.CachedRetriever)),

	// Logger
	logger.GetLogger,

	// Crontab for session sweeps
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
