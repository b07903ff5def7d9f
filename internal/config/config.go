// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// insecureSecret is the development default; Validate refuses it outside development.
const insecureSecret = "dev-secret-change-me"

type Config struct {
	// HTTP Server
	Port       string
	StaticPath string

	// Database
	DBPath string

	// Sessions
	JWTSecret     string
	TokenDuration time.Duration

	// Logging
	LogLevel slog.Level

	// Balance watchers wait this long after the last change before recomputing.
	RecomputeDebounce time.Duration
	// A user's watcher stops after this long without a balance query. Zero disables it.
	WatchIdleTimeout time.Duration

	// Development relaxes the JWT secret check.
	Development bool
}

// Load reads the configuration. A .env file in the working directory, if present,
// fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		StaticPath:        getEnv("STATIC_PATH", "./static"),
		DBPath:            getEnv("DB_PATH", "./data/splitease.db"),
		JWTSecret:         getEnv("JWT_SECRET", insecureSecret),
		TokenDuration:     getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		LogLevel:          parseLevel(getEnv("LOG_LEVEL", "info")),
		RecomputeDebounce: getEnvDuration("RECOMPUTE_DEBOUNCE", 250*time.Millisecond),
		WatchIdleTimeout:  getEnvDuration("WATCH_IDLE_TIMEOUT", 30*time.Minute),
		Development:       getEnvBool("DEVELOPMENT", false),
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	switch {
	case c.JWTSecret == "":
		errors = append(errors, "JWT secret cannot be empty")
	case c.JWTSecret == insecureSecret && !c.Development:
		errors = append(errors, "JWT_SECRET must be set outside development")
	case len(c.JWTSecret) < 16 && !c.Development:
		errors = append(errors, "JWT secret must be at least 16 characters")
	}

	if c.TokenDuration <= 0 {
		errors = append(errors, fmt.Sprintf("invalid token duration %v: must be positive", c.TokenDuration))
	}
	if c.RecomputeDebounce < 0 {
		errors = append(errors, fmt.Sprintf("invalid recompute debounce %v: must not be negative", c.RecomputeDebounce))
	}
	if c.WatchIdleTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid watch idle timeout %v: must not be negative", c.WatchIdleTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
