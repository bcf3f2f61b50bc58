// Package config provides centralized configuration management for the
// Multilead MCP server. Values are layered: built-in defaults, then an
// optional YAML config file, then MULTILEAD_* environment variables.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix shared by all environment overrides,
// e.g. MULTILEAD_API_KEY, MULTILEAD_RATE_LIMIT_PER_MINUTE.
const EnvPrefix = "MULTILEAD"

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Defaults mirror the documented service defaults.
const (
	DefaultBaseURL            = "https://api.multilead.io/api/open-api/v1"
	DefaultTimeoutSeconds     = 30
	DefaultRateLimitPerMinute = 100
	DefaultRateLimitPerHour   = 1000
)

// Load resolves configuration from defaults, the optional config file,
// and environment variables. Safe to call multiple times (reload).
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The logging keys nest under "logging." but are documented flat, so
	// both MULTILEAD_LOG_LEVEL and MULTILEAD_LOGGING_LEVEL work.
	_ = v.BindEnv("logging.level", "MULTILEAD_LOGGING_LEVEL", "MULTILEAD_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "MULTILEAD_LOGGING_FORMAT", "MULTILEAD_LOG_FORMAT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	setConfig(cfg)

	return cfg, nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("rate_limit_per_minute", DefaultRateLimitPerMinute)
	v.SetDefault("rate_limit_per_hour", DefaultRateLimitPerHour)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}
