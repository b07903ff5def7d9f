package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "STATIC_PATH", "JWT_SECRET", "TOKEN_DURATION", "LOG_LEVEL", "RECOMPUTE_DEBOUNCE", "WATCH_IDLE_TIMEOUT", "DEVELOPMENT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/splitease.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.RecomputeDebounce)
	assert.Equal(t, 30*time.Minute, cfg.WatchIdleTimeout)
	assert.Equal(t, ":8080", cfg.Addr())

	assert.Error(t, cfg.Validate(), "the development secret must be rejected outside development")
	cfg.Development = true
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "a-long-enough-production-secret")
	t.Setenv("TOKEN_DURATION", "2h")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RECOMPUTE_DEBOUNCE", "1s")
	t.Setenv("WATCH_IDLE_TIMEOUT", "5m")
	t.Setenv("DEVELOPMENT", "false")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenDuration)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.RecomputeDebounce)
	assert.Equal(t, 5*time.Minute, cfg.WatchIdleTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{Port: "http", JWTSecret: "short", TokenDuration: 0, RecomputeDebounce: -time.Second, WatchIdleTimeout: -time.Minute}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"invalid port", "database path", "at least 16 characters", "token duration", "recompute debounce", "watch idle timeout"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := &Config{Port: "70000", DBPath: "x.db", JWTSecret: "a-long-enough-production-secret", TokenDuration: time.Hour}
	assert.ErrorContains(t, cfg.Validate(), "between 1 and 65535")
}
