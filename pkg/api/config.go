package api

import (
	"os"
	"time"

	"github.com/acolombo/taskdeck/internal/logger"
)

// EnvSecret is the name of the environment variable for the JWT signing secret.
const EnvSecret = "TASKDECK_SECRET"

// APIConfig configures the REST API HTTP server.
type APIConfig struct {
	// Port is the HTTP port for the API endpoints.
	// Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there is no timeout.
	// Default: 10s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// A zero or negative value means there is no timeout.
	// Default: 10s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If zero, the value of ReadTimeout is used.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// JWT configures credential issuance and validation.
	JWT JWTConfig `mapstructure:"jwt" yaml:"jwt"`
}

// JWTConfig configures JWT token generation and validation.
type JWTConfig struct {
	// Secret is the HMAC signing key for JWT tokens.
	// Must be at least 32 characters long.
	// Can also be set via the TASKDECK_SECRET environment variable.
	// Environment variable takes precedence over config file.
	Secret string `mapstructure:"secret" yaml:"secret"`

	// TokenDuration is the lifetime of issued tokens.
	// Default: 24h
	TokenDuration time.Duration `mapstructure:"token_duration" yaml:"token_duration"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *APIConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.JWT.TokenDuration == 0 {
		c.JWT.TokenDuration = 24 * time.Hour
	}
}

// GetJWTSecret returns the JWT secret, preferring the environment variable.
// Returns empty string if neither env var nor config secret is set.
// Logs a warning if the environment variable overrides a config file value.
func (c *APIConfig) GetJWTSecret() string {
	envSecret := os.Getenv(EnvSecret)
	if envSecret != "" {
		if c.JWT.Secret != "" && c.JWT.Secret != envSecret {
			logger.Warn("JWT secret from environment variable overrides config file value",
				"env_var", EnvSecret)
		}
		return envSecret
	}
	return c.JWT.Secret
}

// HasJWTSecret returns whether a JWT secret is configured.
func (c *APIConfig) HasJWTSecret() bool {
	return c.GetJWTSecret() != ""
}
