// Package config provides configuration management for the sentinel.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	News        NewsConfig     `mapstructure:"news"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Credentials Credentials    `mapstructure:"-"` // Loaded separately
}

// AnalysisConfig holds risk analysis configuration.
type AnalysisConfig struct {
	RiskThreshold    float64 `mapstructure:"risk_threshold"`
	ForecastWeeks    int     `mapstructure:"forecast_weeks"`
	MinHistoryPoints int     `mapstructure:"min_history_points"`
	Model            string  `mapstructure:"model"`
}

// NewsConfig holds news fetch configuration.
type NewsConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Language string `mapstructure:"language"`
}

// CacheConfig holds news cache configuration.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Credentials holds API credentials.
type Credentials struct {
	NewsData NewsDataCredentials `mapstructure:"newsdata"`
	LLM      LLMCredentials      `mapstructure:"llm"`
}

// NewsDataCredentials holds the newsdata.io API key.
type NewsDataCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// LLMCredentials holds the model service credentials. They are passed
// through to the news collector per invocation, never held globally.
type LLMCredentials struct {
	APIKey    string `mapstructure:"api_key"`
	ProjectID string `mapstructure:"project_id"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/supply-sentinel"
	}
	return filepath.Join(home, ".config", "supply-sentinel")
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			RiskThreshold:    7.0,
			ForecastWeeks:    4,
			MinHistoryPoints: 10,
			Model:            "gpt-4o-mini",
		},
		News: NewsConfig{
			Endpoint: "https://newsdata.io/api/1/latest",
			Language: "en",
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		Database: DatabaseConfig{
			Path: filepath.Join(DefaultConfigDir(), "sentinel.db"),
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.yaml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.yaml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	defaults := Default()
	v.SetDefault("analysis.risk_threshold", defaults.Analysis.RiskThreshold)
	v.SetDefault("analysis.forecast_weeks", defaults.Analysis.ForecastWeeks)
	v.SetDefault("analysis.min_history_points", defaults.Analysis.MinHistoryPoints)
	v.SetDefault("analysis.model", defaults.Analysis.Model)
	v.SetDefault("news.endpoint", defaults.News.Endpoint)
	v.SetDefault("news.language", defaults.News.Language)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("database.path", defaults.Database.Path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Missing file is fine, defaults apply.
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NEWSDATA_API_KEY"); v != "" {
		cfg.Credentials.NewsData.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.Credentials.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_PROJECT_ID"); v != "" {
		cfg.Credentials.LLM.ProjectID = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Analysis.RiskThreshold < 0 {
		return fmt.Errorf("analysis.risk_threshold must be non-negative, got %f", c.Analysis.RiskThreshold)
	}
	if c.Analysis.ForecastWeeks <= 0 {
		return fmt.Errorf("analysis.forecast_weeks must be positive, got %d", c.Analysis.ForecastWeeks)
	}
	if c.Analysis.MinHistoryPoints < 2 {
		return fmt.Errorf("analysis.min_history_points must be at least 2, got %d", c.Analysis.MinHistoryPoints)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %s", c.Cache.TTL)
	}
	return nil
}
