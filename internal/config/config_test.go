package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // без .env
	t.Setenv("DATABASE_URL", "postgres://localhost/dispatch")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.DispatchLockTimeout)
	assert.Equal(t, 5, cfg.DispatchMaxUnits)
	assert.True(t, cfg.DispatchAllowUnknownLocation)
	assert.True(t, cfg.DispatchAutoOnReport)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, "stdout", cfg.TracingExporter)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.WebhookBaseDelay)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/dispatch")
	t.Setenv("DISPATCH_LOCK_TIMEOUT", "750ms")
	t.Setenv("DISPATCH_MAX_UNITS", "2")
	t.Setenv("DISPATCH_ALLOW_UNKNOWN_LOCATION", "false")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("TRACING_SAMPLE_RATIO", "0.25")
	t.Setenv("API_KEYS", " key-a , ,key-b")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.DispatchLockTimeout)
	assert.Equal(t, 2, cfg.DispatchMaxUnits)
	assert.False(t, cfg.DispatchAllowUnknownLocation)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, "otlp", cfg.TracingExporter)
	assert.InDelta(t, 0.25, cfg.TracingSampleRatio, 1e-9)
	assert.Equal(t, []string{"key-a", "key-b"}, cfg.APIKeys)
}

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseURL:         "postgres://localhost/dispatch",
			DispatchMaxUnits:    5,
			DispatchLockTimeout: time.Second,
			WebhookMaxRetries:   3,
			TracingExporter:     "stdout",
			TracingSampleRatio:  1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero units", mutate: func(c *Config) { c.DispatchMaxUnits = 0 }, wantErr: "DISPATCH_MAX_UNITS"},
		{name: "zero lock timeout", mutate: func(c *Config) { c.DispatchLockTimeout = 0 }, wantErr: "DISPATCH_LOCK_TIMEOUT"},
		{name: "no retries", mutate: func(c *Config) { c.WebhookMaxRetries = 0 }, wantErr: "WEBHOOK_MAX_RETRIES"},
		{name: "unknown exporter", mutate: func(c *Config) { c.TracingExporter = "jaeger" }, wantErr: "TRACING_EXPORTER"},
		{name: "ratio above one", mutate: func(c *Config) { c.TracingSampleRatio = 1.5 }, wantErr: "TRACING_SAMPLE_RATIO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
