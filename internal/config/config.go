// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the casino server's configuration.
type Config struct {
	Arms       int    `env:"CASINO_ARMS" envDefault:"10"`
	TrialCap   int    `env:"CASINO_TRIAL_CAP" envDefault:"0"`
	Seed       uint64 `env:"CASINO_SEED" envDefault:"0"`
	CatalogDSN string `env:"CASINO_CATALOG_DSN" envDefault:":memory:"`
	HTTPAddr   string `env:"CASINO_HTTP_ADDR" envDefault:":8000"`
	GRPCAddr   string `env:"CASINO_GRPC_ADDR" envDefault:":50051"`
	LogLevel   string `env:"CASINO_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"CASINO_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional dotenv files, then the environment. Variables
// already set in the environment win over the files.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the casino cannot run with.
func (c Config) Validate() error {
	if c.Arms <= 0 {
		return fmt.Errorf("CASINO_ARMS must be positive, got %d", c.Arms)
	}
	if c.TrialCap < 0 {
		return fmt.Errorf("CASINO_TRIAL_CAP must not be negative, got %d", c.TrialCap)
	}
	return nil
}
