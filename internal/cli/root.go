// Package cli provides the command-line interface for the sentinel.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"supply-sentinel/internal/agents"
	"supply-sentinel/internal/cache"
	"supply-sentinel/internal/config"
	"supply-sentinel/internal/logging"
	"supply-sentinel/internal/notify"
	"supply-sentinel/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config       *config.Config
	Logger       zerolog.Logger
	Store        store.DataStore
	Cache        cache.NewsCache
	Orchestrator *agents.Orchestrator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite store
	dataStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, most commands will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite store initialized")
	}

	// News cache is optional; a missing Redis degrades to no caching.
	app.Cache = cache.NopCache{}
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Could not connect to Redis, caching disabled")
		} else {
			app.Cache = redisCache
			logger.Debug().Msg("Redis news cache initialized")
		}
	}

	if app.Store != nil {
		app.Orchestrator = buildOrchestrator(app)
	}

	rootCmd := &cobra.Command{
		Use:   "sentinel",
		Short: "Supply Chain Sentinel - supplier risk monitoring CLI",
		Long: `Supply Chain Sentinel flags at-risk suppliers and enriches each one
with demand-forecast, logistics, and news-derived risk context,
producing prioritized alerts.

Use 'sentinel help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/supply-sentinel)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newAlertsCmd(app))
	rootCmd.AddCommand(newSuppliersCmd(app))

	return rootCmd
}

// buildOrchestrator wires the collectors into an orchestrator.
func buildOrchestrator(app *App) *agents.Orchestrator {
	cfg := app.Config

	supplierAgent := agents.NewSupplierAgent(app.Store, cfg.Analysis.RiskThreshold, app.Logger)
	demandAgent := agents.NewDemandAgent(app.Store, cfg.Analysis.ForecastWeeks, cfg.Analysis.MinHistoryPoints, app.Logger)
	logisticsAgent := agents.NewLogisticsAgent(app.Store, app.Logger)
	newsAgent := agents.NewNewsAgent(agents.NewsAgentConfig{
		APIKey:   cfg.Credentials.NewsData.APIKey,
		Endpoint: cfg.News.Endpoint,
		Language: cfg.News.Language,
		CacheTTL: cfg.Cache.TTL,
	}, app.Cache, agents.OpenAIFactory(cfg.Analysis.Model), app.Logger)

	return agents.NewOrchestrator(
		supplierAgent,
		demandAgent,
		logisticsAgent,
		newsAgent,
		notify.NewTerminalNotifier(),
		app.Logger,
	)
}

// credentialsFromConfig maps configured LLM credentials to run
// credentials.
func credentialsFromConfig(cfg *config.Config) agents.Credentials {
	return agents.Credentials{
		APIKey:    cfg.Credentials.LLM.APIKey,
		ProjectID: cfg.Credentials.LLM.ProjectID,
	}
}
