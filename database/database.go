// database/database.go
package database

import (
	"fmt"
	"os"

	"darkzone-stats-server/models"
	"darkzone-stats-server/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to Postgres when DATABASE_URL is set, otherwise to the
// embedded SQLite file at SQLITE_PATH (default database/darkzone.db).
func Open() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	}

	path := utils.Getenv("SQLITE_PATH", "database/darkzone.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store at %s: %w", path, err)
	}
	return db, nil
}

// Init migrates the schema and seeds sample data into empty tables.
func Init(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Player{},
		&models.Weapon{},
		&models.MapStat{},
		&models.GoldLocation{},
		&models.EconomyStat{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return Seed(db)
}
