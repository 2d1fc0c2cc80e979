package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "FLIGHTDELAYS_TEST_"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(testPrefix)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "5002", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "sqlite://data/flights.sqlite3", cfg.Database.URI)
	assert.Equal(t, 3*time.Minute, cfg.Server.RateLimit.ExpiresIn)
	assert.Zero(t, cfg.Server.RateLimit.Rate)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 500*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(testPrefix+"PRIMARY__ENV", "production")
	t.Setenv(testPrefix+"SERVER__PORT", "8080")
	t.Setenv(testPrefix+"SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv(testPrefix+"SERVER__RATE_LIMIT__RATE", "2.5")
	t.Setenv(testPrefix+"DATABASE__URI", "postgres://reader@db/flights")
	t.Setenv(testPrefix+"OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv(testPrefix+"OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "2s")

	cfg, err := load(testPrefix)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.Server.RateLimit.Rate)
	assert.Equal(t, "postgres://reader@db/flights", cfg.Database.URI)

	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, "json", cfg.Observability.Logging.Format, "untouched fields keep their defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "zero pool", key: "DATABASE__MAX_OPEN_CONNS", val: "0"},
		{name: "unknown log level", key: "OBSERVABILITY__LOGGING__LEVEL", val: "loud"},
		{name: "unknown log format", key: "OBSERVABILITY__LOGGING__FORMAT", val: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(testPrefix+tt.key, tt.val)

			_, err := load(testPrefix)
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
	assert.Nil(t, splitList(""))
}
