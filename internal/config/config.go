// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the campaign daemon reads from its environment.
type Config struct {
	DatabasePath string `env:"WARMARCH_DB" envDefault:"data/warmarch.db"`
	CampaignName string `env:"WARMARCH_CAMPAIGN_NAME" envDefault:"Unnamed Campaign"`
	CampaignSeed int64  `env:"WARMARCH_SEED" envDefault:"42"`
	Days         int    `env:"WARMARCH_DAYS" envDefault:"30"`
	SaveEvery    int    `env:"WARMARCH_SAVE_EVERY" envDefault:"1"`
	LogLevel     string `env:"WARMARCH_LOG_LEVEL" envDefault:"info"`

	// Map generation knobs for fresh campaigns.
	MapWidth  int `env:"WARMARCH_MAP_WIDTH" envDefault:"40"`
	MapHeight int `env:"WARMARCH_MAP_HEIGHT" envDefault:"30"`
	Factions  int `env:"WARMARCH_FACTIONS" envDefault:"3"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Days < 1 {
		return nil, fmt.Errorf("WARMARCH_DAYS must be at least 1, got %d", cfg.Days)
	}
	if cfg.SaveEvery < 1 {
		cfg.SaveEvery = 1
	}
	return &cfg, nil
}

// SlogLevel maps the configured log level name onto a slog.Level.
// Unknown names fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
