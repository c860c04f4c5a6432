package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment   string
	HTTPPort      string
	DatabasePath  string
	AdminKey      string
	TZOffsetHours int
	GeoIPDBPath   string
	NotifyURLs    []string
}

// Load reads env vars (optionally from a .env file) and falls back to
// defaults so the server can boot with zero configuration.
func Load() (Config, error) {
	// Missing .env is fine; real env vars always win.
	_ = godotenv.Load()

	cfg := Config{
		Environment:   getEnv("VMS_ENV", "development"),
		HTTPPort:      getEnv("VMS_HTTP_PORT", "8080"),
		DatabasePath:  getEnv("VMS_DB_PATH", filepath.Join("data", "visitors.db")),
		AdminKey:      getEnv("VMS_ADMIN_KEY", "123456"),
		TZOffsetHours: getEnvInt("VMS_TZ_OFFSET_HOURS", 8),
		GeoIPDBPath:   os.Getenv("VMS_GEOIP_DB"),
		NotifyURLs:    splitList(os.Getenv("VMS_NOTIFY_URLS")),
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
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
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
