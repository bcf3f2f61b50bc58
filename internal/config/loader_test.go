package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	require.Equal(t, DefaultRateLimitPerMinute, cfg.RateLimitPerMinute)
	require.Equal(t, DefaultRateLimitPerHour, cfg.RateLimitPerHour)
	require.Equal(t, "localhost", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.True(t, cfg.Metrics.Enabled)
	require.False(t, cfg.Configured())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MULTILEAD_API_KEY", "test-key-123")
	t.Setenv("MULTILEAD_BASE_URL", "https://staging.multilead.io/api/open-api/v1")
	t.Setenv("MULTILEAD_TIMEOUT_SECONDS", "5")
	t.Setenv("MULTILEAD_RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("MULTILEAD_RATE_LIMIT_PER_HOUR", "50")
	t.Setenv("MULTILEAD_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	require.True(t, cfg.Configured())
	require.Equal(t, "https://staging.multilead.io/api/open-api/v1", cfg.BaseURL)
	require.Equal(t, 5, cfg.TimeoutSeconds)
	require.Equal(t, 5*time.Second, cfg.Timeout())
	require.Equal(t, 10, cfg.RateLimitPerMinute)
	require.Equal(t, 50, cfg.RateLimitPerHour)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestFlatLogEnvAliases(t *testing.T) {
	t.Setenv("MULTILEAD_LOG_LEVEL", "debug")
	t.Setenv("MULTILEAD_LOG_FORMAT", "text")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestNestedLogEnvWinsOverFlat(t *testing.T) {
	t.Setenv("MULTILEAD_LOGGING_LEVEL", "warn")
	t.Setenv("MULTILEAD_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadQuotas(t *testing.T) {
	t.Setenv("MULTILEAD_RATE_LIMIT_PER_MINUTE", "0")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate_limit_per_minute")
}

func TestValidateRejectsHourBelowMinute(t *testing.T) {
	t.Setenv("MULTILEAD_RATE_LIMIT_PER_MINUTE", "100")
	t.Setenv("MULTILEAD_RATE_LIMIT_PER_HOUR", "10")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate_limit_per_hour")
}

func TestTimeoutFallback(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 0}
	require.Equal(t, 30*time.Second, cfg.Timeout())
}
