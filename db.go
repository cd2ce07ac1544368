package main

import (
	"log"
	"os"
	"strings"

	"fintrack/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openDB connects to Postgres when DB_DSN is set, otherwise falls back to
// a local SQLite file (DB_PATH, default database.db).
func openDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// initDB opens the store and creates the schema if absent. Migrations can
// be disabled with DB_AUTO_MIGRATE=false for locked-down databases.
func initDB() *gorm.DB {
	db, err := openDB()
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		if err := migrateDB(db); err != nil {
			log.Printf("migration warning: %v", err)
		}
	}
	return db
}

// migrateDB runs AutoMigrate per model so a failure on one doesn't block
// the others.
func migrateDB(db *gorm.DB) error {
	for _, m := range []any{&models.User{}, &models.Transaction{}, &models.Budget{}} {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}
