package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppEnv(t *testing.T) {
	for _, env := range []AppEnv{"", "dev", "development", "local", "test", "testing"} {
		assert.True(t, env.IsDevelopment(), env)
		assert.NoError(t, ValidateAutoMigrateAllowed(env), env)
	}

	for _, env := range []AppEnv{"prod", "production", "staging", "qa"} {
		assert.False(t, env.IsDevelopment(), env)
		assert.Error(t, ValidateAutoMigrateAllowed(env), env)
	}

	assert.True(t, AppEnv("prod").IsProduction())
	assert.False(t, AppEnv("staging").IsProduction())
}

func TestCurrentAppEnv_Normalises(t *testing.T) {
	t.Setenv(AppEnvKey, "  Production ")
	assert.Equal(t, AppEnv("production"), CurrentAppEnv())
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	unsetEnv(t, AppEnvKey, "APP_PORT", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "REQUEST_TIMEOUT",
		"MAX_REQUEST_BODY_BYTES", "TRUSTED_PROXIES", "CORS_ALLOWED_ORIGIN", "METRICS_ENABLED",
		"HSTS_ENABLED", "HSTS_MAX_AGE", "OTEL_TRACES_ENABLED", "OTEL_SERVICE_NAME")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 100, cfg.HTTP.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
	assert.True(t, cfg.HTTP.MetricsEnabled)
	assert.False(t, cfg.HTTP.HSTS.Enabled)
	assert.Empty(t, cfg.HTTP.TracingService)
	assert.Equal(t, "waitlist-api", cfg.Tracing.ServiceName)
}

func TestLoadAppConfig_FromEnv(t *testing.T) {
	unsetEnv(t, "HSTS_ENABLED")
	t.Setenv(AppEnvKey, "production")
	t.Setenv("RATE_LIMIT_REQUESTS", "7")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://a.example.com,https://b.example.com")
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "waitlist-staging")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, AppEnv("production"), cfg.Env)
	assert.Equal(t, 7, cfg.HTTP.RateLimitRequests)
	assert.Equal(t, 2*time.Minute, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.HTTP.HSTS.Enabled)
	assert.Equal(t, "waitlist-staging", cfg.HTTP.TracingService)
}

func TestLoadAppConfig_InvalidValue(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "bogus")

	_, err := LoadAppConfig()
	assert.ErrorContains(t, err, "app config")
}
