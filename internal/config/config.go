// Package config loads facevibe configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings for the facevibe server.
type Config struct {
	// Server
	Port     string `env:"FACEVIBE_PORT" envDefault:"8090"`
	LogLevel string `env:"FACEVIBE_LOG_LEVEL" envDefault:"info"`

	// Persistence. Empty means ~/.facevibe/state.json.
	StorePath string `env:"FACEVIBE_STORE_PATH"`

	// External landmark detector feed. Empty disables the client;
	// frames then arrive only via the /ws/frames ingest endpoint.
	DetectorURL    string `env:"FACEVIBE_DETECTOR_URL"`
	DetectorHealth string `env:"FACEVIBE_DETECTOR_HEALTH_URL"`

	// Seed for the stochastic game gate. Zero means time-seeded.
	RandomSeed int64 `env:"FACEVIBE_RANDOM_SEED"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.StorePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.StorePath = filepath.Join(home, ".facevibe", "state.json")
	}

	return cfg, nil
}
