package main

import (
	"fintrack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(cfg *Config) error {
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		migrateDB()
	}
	return nil
}

// migrateDB migrates models individually so a failure on one doesn't block others.
func migrateDB() {
	for _, m := range []any{&models.User{}, &models.Category{}, &models.Transaction{}, &models.Session{}} {
		if err := db.AutoMigrate(m); err != nil {
			log.Warnf("migration warning: %v", err)
		}
	}
}
