package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PlaceholderDatabaseURL is the sentinel DSN shipped in preview deployments.
// It is never treated as a real configuration.
const PlaceholderDatabaseURL = "postgres://placeholder.local:5432/flatdash"

const placeholderPassword = "placeholder-password"

// Real credentials are much longer than placeholder values
const minCredentialLength = 20

// Config holds the application configuration
type Config struct {
	Environment        string
	ServerPort         int
	DatabaseURL        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	LogLevel           string
	CORSAllowedOrigins []string
	OTLPEndpoint       string
}

// Load reads configuration from the environment, after a best-effort .env
// load for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxOpen, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdle, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	lifetimeMin, err := strconv.Atoi(getEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME_MINUTES: %w", err)
	}

	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		ServerPort:        port,
		DatabaseURL:       getEnv("DATABASE_URL", PlaceholderDatabaseURL),
		DBMaxOpenConns:    maxOpen,
		DBMaxIdleConns:    maxIdle,
		DBConnMaxLifetime: time.Duration(lifetimeMin) * time.Minute,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}, nil
}

// IsConfigured reports whether the database configuration looks real rather
// than a demo placeholder. Strict on purpose: preview deployments ship
// sentinel values that must not be mistaken for a usable database.
func (c *Config) IsConfigured() bool {
	return isRealDatabaseURL(c.DatabaseURL)
}

func isRealDatabaseURL(raw string) bool {
	if raw == "" || raw == PlaceholderDatabaseURL {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return false
	}

	host := u.Hostname()
	if host == "" || strings.Contains(host, "placeholder") {
		return false
	}

	if u.User == nil {
		return false
	}
	password, ok := u.User.Password()
	if !ok || password == placeholderPassword {
		return false
	}
	// Real credentials are much longer than anything a template would ship
	return len(password) > minCredentialLength
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
