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

// Config holds all runtime configuration for the portal service
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Kafka event publishing (optional; empty brokers disables Kafka)
	KafkaBrokers []string
	KafkaTopic   string

	// Email delivery
	EmailBackend   string // "sendgrid" or "console"
	SendgridAPIKey string
	FromEmail      string
	FromName       string

	// Base URL embedded in invitation links
	SiteURL string

	// Session handling
	SessionIdleTTL   time.Duration
	InvitationMaxAge time.Duration
}

// LoadConfig reads configuration from .env (if present) and environment variables
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments rely on env vars
	_ = godotenv.Load()

	cfg := &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "portal.events"),
		EmailBackend:     getEnv("EMAIL_BACKEND", "console"),
		SendgridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		FromEmail:        getEnv("FROM_EMAIL", "noreply@akalan.com"),
		FromName:         getEnv("FROM_NAME", "AKalan"),
		SiteURL:          getEnv("SITE_URL", "http://localhost:8080"),
		SessionIdleTTL:   getDurationSeconds("SESSION_IDLE_TTL_SECONDS", 900),
		InvitationMaxAge: getDurationSeconds("INVITATION_MAX_AGE_SECONDS", int(7*24*time.Hour/time.Second)),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.EmailBackend == "sendgrid" && cfg.SendgridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_BACKEND=sendgrid")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
