package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port                string        `validate:"required,numeric"`
	Mode                string        `validate:"oneof=debug release test"`
	DatabasePath        string        `validate:"required"`
	SessionTTL          time.Duration `validate:"min=1s"`
	PreferenceRetention time.Duration `validate:"gt=0"`

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
}

// loadConfig reads the environment. A .env file, when present, has already
// been loaded by the godotenv autoload import in main.go.
func loadConfig() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		Mode:              getenv("GIN_MODE", gin.DebugMode),
		DatabasePath:      getenv("DATABASE_PATH", "portfolio.db"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	var err error
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 30*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.PreferenceRetention, err = durationEnv("PREFERENCE_RETENTION", 365*24*time.Hour); err != nil {
		return cfg, err
	}

	// Default credentials for development (set real ones in production)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" && cfg.Mode == gin.DebugMode {
		cfg.AdminPassword = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// adminEnabled reports whether any admin credential is configured.
func (c Config) adminEnabled() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
