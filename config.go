package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Addr         string
	DBDSN        string
	SecretKey    string
	LogLevel     string
	AutoMigrate  bool
	TemplatesDir string // when set, templates load from disk and hot-reload (development)
}

// loadConfig reads ./.env if present (never overriding real env vars) and
// builds the Config. SECRET_KEY signs session cookies and CSRF state; a dev
// fallback exists but release mode refuses to start without one.
func loadConfig() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{
		Addr:         getEnv("ADDR", ":8080"),
		DBDSN:        os.Getenv("DB_DSN"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AutoMigrate:  getEnv("DB_AUTO_MIGRATE", "true") != "false",
		TemplatesDir: os.Getenv("TEMPLATES_DIR"),
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required (postgres DSN)")
	}
	if cfg.SecretKey == "" {
		if gin.Mode() == gin.ReleaseMode {
			return nil, fmt.Errorf("SECRET_KEY is required in release mode")
		}
		cfg.SecretKey = "dev-insecure-secret-change" // development fallback
		log.Warn("SECRET_KEY not set, using insecure development fallback")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
