package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken   string
	DBDSN           string
	Environment     string
	MigrationsPath  string
	HolidayCacheTTL time.Duration
}

func Load() (*Config, error) {
	// Load .env if present; plain environment variables otherwise.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Holiday lookups for a school year are cached for a week by default.
	cfg.HolidayCacheTTL = 7 * 24 * time.Hour
	if raw := os.Getenv("HOLIDAY_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("HOLIDAY_CACHE_TTL is not a valid duration: %w", err)
		}
		cfg.HolidayCacheTTL = ttl
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
