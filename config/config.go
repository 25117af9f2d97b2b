package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server
	Port          string
	PublicBaseURL string
	StaticDir     string
	LogLevel      logrus.Level

	// Storage
	PostgresURL string
	RedisAddr   string

	// Auth
	AdminPassword string
	SessionTTL    time.Duration
	CookieSecure  bool
	BcryptCost    int

	// Email
	ResendAPIKey string
	EmailFrom    string
}

func Load() (*Config, error) {
	port := getEnv("PORT", "3000")

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Port:          port,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		StaticDir:     getEnv("STATIC_DIR", ""),
		LogLevel:      level,

		PostgresURL: getEnv("POSTGRES_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "Wemender GJU <jegyek@example.com>"),
	}

	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL environment variable is required")
	}

	return cfg, nil
}

// AdminEnabled reports whether an admin password is configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
