package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studenttrack/internal/config"
	"studenttrack/internal/model"
)

// InitDB opens postgres when DATABASE_URL is set, otherwise a local sqlite
// file, and migrates all tables. TranslateError lets callers detect
// uniqueness violations via gorm.ErrDuplicatedKey on both drivers.
func InitDB() *gorm.DB {
	var dialector gorm.Dialector
	if config.DatabaseURL != "" {
		dialector = postgres.Open(config.DatabaseURL)
	} else {
		dialector = sqlite.Open(config.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to the database:", err)
	}

	if err := db.AutoMigrate(&model.Student{}, &model.Grade{}, &model.Attendance{}); err != nil {
		log.Fatal("Failed to auto-migrate the database:", err)
	}

	return db
}
