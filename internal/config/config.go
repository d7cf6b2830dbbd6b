package config

import (
	"github.com/jmgilman/go/errors"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "BRDBFS"

// Config holds the inspector configuration.
type Config struct {
	LogLevel     string `envconfig:"LOG_LEVEL" default:"warn"`
	LogDev       bool   `envconfig:"LOG_DEV" default:"false"`
	VerifyHashes bool   `envconfig:"VERIFY_HASHES" default:"true"`
	SchemaFormat string `envconfig:"SCHEMA_FORMAT" default:"text"`
	MetricsFile  string `envconfig:"METRICS_FILE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		LogLevel:     "warn",
		LogDev:       false,
		VerifyHashes: true,
		SchemaFormat: "text",
	}
}

// Validate checks values envconfig cannot check by type alone.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown log level %q", c.LogLevel)
	}

	switch c.SchemaFormat {
	case "text", "json", "yaml":
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown schema format %q", c.SchemaFormat)
	}
	return nil
}
