package config

import (
	"time"

	"github.com/acolombo/taskdeck/internal/logger"
)

// Default values for configuration.
const (
	DefaultEnvironment     = EnvDevelopment
	DefaultShutdownTimeout = 30 * time.Second
	DefaultLogLevel        = "INFO"
	DefaultLogFormat       = "text"
	DefaultLogOutput       = "stdout"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// This is called after loading config from file/env to ensure all fields
// have sensible values.
func ApplyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}
	applyLoggingDefaults(&cfg.Logging)
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	cfg.Database.ApplyDefaults()
}

func applyLoggingDefaults(cfg *logger.Config) {
	if cfg.Level == "" {
		cfg.Level = DefaultLogLevel
	}
	if cfg.Format == "" {
		cfg.Format = DefaultLogFormat
	}
	if cfg.Output == "" {
		cfg.Output = DefaultLogOutput
	}
}

// GetDefaultConfig returns a configuration with all default values applied.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
