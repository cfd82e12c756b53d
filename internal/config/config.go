package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	DatabaseURL string

	// Cache (optional; empty disables caching)
	RedisURL string

	// Admin API token
	AdminToken string

	// Rate Limiting
	RateLimitRPS int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env if present (development only; real env vars take precedence)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		AdminToken:   getEnv("ADMIN_API_TOKEN", ""),
		RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 10),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:3000")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("ADMIN_API_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
