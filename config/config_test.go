package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"GO_ENV", "PORT", "DATABASE_URL", "STORAGE", "JWT_SECRET", "JWT_EXPIRY", "REQUEST_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "REDIS_URL", "EVENT_CACHE_TTL", "NOTIFY_TRANSPORT", "AMQP_URL",
	"AMQP_EXCHANGE", "AMQP_QUEUE", "EMAIL_PROVIDER", "EMAIL_FROM_ADDRESS", "EMAIL_FROM_NAME",
	"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "SES_INSECURE_SKIP_VERIFY", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, NotifyDirect, cfg.NotifyTransport)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.EventCacheTTL)
	assert.Equal(t, "noop", cfg.EmailProvider)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.DBUrl)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.SESInsecureSkipVerify)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("REQUEST_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("NOTIFY_TRANSPORT", "amqp")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, NotifyAMQP, cfg.NotifyTransport)
	assert.True(t, cfg.SESInsecureSkipVerify)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad duration", "JWT_EXPIRY", "tomorrow", "JWT_EXPIRY"},
		{"negative timeout", "REQUEST_TIMEOUT", "-1s", "REQUEST_TIMEOUT"},
		{"zero cache ttl", "EVENT_CACHE_TTL", "0s", "EVENT_CACHE_TTL"},
		{"bad bool", "SES_INSECURE_SKIP_VERIFY", "maybe", "SES_INSECURE_SKIP_VERIFY"},
		{"unknown storage", "STORAGE", "sqlite", "STORAGE"},
		{"unknown transport", "NOTIFY_TRANSPORT", "kafka", "NOTIFY_TRANSPORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewLogger(t *testing.T) {
	t.Run("production writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "production", "info").Info("hello", "k", "v")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"k":"v"`)
	})
	t.Run("development writes text", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "development", "").Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "development", "warn")
		logger.Info("quiet")
		logger.Warn("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
