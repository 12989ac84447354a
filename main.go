package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	secretKey = []byte(cfg.SecretKey)

	if err := initDB(cfg); err != nil {
		log.Fatalf("database: %v", err)
	}

	// Support a lightweight migrate command: `./fintrack migrate`
	// It runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		migrateDB()
		log.Info("migration completed")
		return
	}

	r := gin.Default()
	if err := loadTemplates(r, cfg.TemplatesDir); err != nil {
		log.Fatalf("templates: %v", err)
	}
	setupRoutes(r)

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
