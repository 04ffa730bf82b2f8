// Package config holds the environment configuration shared by the
// command-line tools.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Tools is read from the environment; command-line flags take precedence.
type Tools struct {
	// ExportDir is the hand export directory (settings.json + nodes/).
	ExportDir string `env:"HRC_EXPORT_DIR"`
	// Workers is the number of concurrent traversal workers.
	Workers   int  `env:"HRC_WORKERS" envDefault:"8"`
	ShowHands bool `env:"HRC_SHOW_HANDS" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target interface{}) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}

	return nil
}

// LoadTools returns the tool configuration from the environment.
func LoadTools() (Tools, error) {
	var cfg Tools
	if err := ParseEnv(&cfg); err != nil {
		return Tools{}, err
	}
	if cfg.Workers < 1 {
		return Tools{}, errors.Errorf("HRC_WORKERS must be positive, got %d", cfg.Workers)
	}

	return cfg, nil
}
