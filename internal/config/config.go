package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete application configuration.
// Values are resolved from defaults, an optional config file, and
// MULTILEAD_* environment variables (highest precedence).
type Config struct {
	// APIKey is the Multilead bearer credential. Required for upstream calls;
	// the server still starts without it and reports degraded health.
	APIKey string `mapstructure:"api_key"`

	// BaseURL is the Multilead API root all tool endpoints are resolved against.
	BaseURL string `mapstructure:"base_url"`

	// TimeoutSeconds bounds each upstream HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// RateLimitPerMinute and RateLimitPerHour are the dual fixed-window
	// quotas applied per client identity before any upstream dispatch.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	RateLimitPerHour   int `mapstructure:"rate_limit_per_hour"`

	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format selects the output encoding
	// Valid values: json, text
	Format string `mapstructure:"format"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics are exposed
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	Port int `mapstructure:"port"`
}

// Timeout returns the upstream request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Configured reports whether the upstream credential is present.
// The credential value itself is never logged or echoed.
func (c *Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures. A missing credential is intentionally not an error
// here; health reporting covers that case.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.RateLimitPerHour <= 0 {
		return fmt.Errorf("rate_limit_per_hour must be positive, got %d", c.RateLimitPerHour)
	}
	if c.RateLimitPerHour < c.RateLimitPerMinute {
		return fmt.Errorf("rate_limit_per_hour (%d) must be >= rate_limit_per_minute (%d)",
			c.RateLimitPerHour, c.RateLimitPerMinute)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
