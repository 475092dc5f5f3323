package db

import (
	"fmt"
	"log"

	"youngchai/internal/config"
	"youngchai/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the configured database and migrates the comments table.
// DATABASE_URL selects Postgres, SQLITE_PATH selects SQLite. With neither
// set it returns (nil, nil): the server still starts and the handlers
// answer with an explicit "not configured" payload instead of crashing.
func Init(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case cfg.DatabaseURL != "":
		dialector = postgres.Open(cfg.DatabaseURL)
	case cfg.SQLitePath != "":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		log.Println("No database configured, comment storage disabled")
		return nil, nil
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established")

	if err := conn.AutoMigrate(&models.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed")

	return conn, nil
}
