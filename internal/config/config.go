// Package config loads the demo's database and logging settings.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/go-mizu/sqlwrap"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Config holds the demo configuration.
type Config struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres pgx"`
	DSN    string `yaml:"dsn" validate:"required"`
	Log    Log    `yaml:"log"`
}

// Log configures the zap logger.
type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	// File enables a rotated JSON log file in addition to the console.
	File string `yaml:"file"`
}

// Default returns a configuration for an in-memory SQLite database.
func Default() *Config {
	return &Config{
		Driver: DriverSQLite,
		DSN:    ":memory:",
		Log:    Log{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, applies the
// SQLWRAP_DRIVER and SQLWRAP_DSN environment overrides and validates the
// result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if v := os.Getenv("SQLWRAP_DRIVER"); v != "" {
		cfg.Driver = v
	}
	if v := os.Getenv("SQLWRAP_DSN"); v != "" {
		cfg.DSN = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// Placeholder returns the parameter style of the configured driver.
func (c *Config) Placeholder() sqlwrap.Placeholder {
	return sqlwrap.PlaceholderFor(c.Driver)
}
