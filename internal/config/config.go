// Package config reads the process configuration from the environment and optional .env files.
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

const devSessionSecret = "dev-session-secret-change-me-0123"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL           string
	MigrateOnBoot bool
}

type SessionConfig struct {
	Secret string
	MaxAge int
	Secure bool
}

// RedisConfig is optional; an empty Addr disables checkout idempotency keys.
type RedisConfig struct {
	Addr           string
	IdempotencyTTL time.Duration
}

type CatalogConfig struct {
	PageSize int
}

type LogConfig struct {
	Level slog.Level
}

// TelemetryConfig is optional; an empty OTLPEndpoint disables trace export.
type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
}

func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func Load() (*Config, error) {
	// .env.local wins over .env; neither is required
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	var errs []string

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			Env:             getEnv("ENV", "development"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second, &errs),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second, &errs),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second, &errs),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrateOnBoot: getEnvAsBool("DB_MIGRATE", true, &errs),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 14*24*60*60, &errs),
			Secure: getEnvAsBool("SESSION_SECURE", false, &errs),
		},
		Redis: RedisConfig{
			Addr:           getEnv("REDIS_ADDR", ""),
			IdempotencyTTL: getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour, &errs),
		},
		Catalog: CatalogConfig{
			PageSize: getEnvAsInt("CATALOG_PAGE_SIZE", 20, &errs),
		},
		Log: LogConfig{
			Level: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo, &errs),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "garage-sale"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}

	if cfg.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if cfg.Session.Secret == "" {
		if cfg.IsProduction() {
			errs = append(errs, "SESSION_SECRET is required in production")
		}
		cfg.Session.Secret = devSessionSecret
	}
	if len(cfg.Session.Secret) < 32 {
		errs = append(errs, "SESSION_SECRET must be at least 32 bytes")
	}

	if cfg.Catalog.PageSize <= 0 {
		errs = append(errs, "CATALOG_PAGE_SIZE must be positive")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not an integer", key, raw))
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool, errs *[]string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not a boolean", key, raw))
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not a duration", key, raw))
		return defaultValue
	}

	return value
}

func getEnvAsLevel(key string, defaultValue slog.Level, errs *[]string) slog.Level {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not a log level", key, raw))
		return defaultValue
	}

	return level
}
