package services

import (
	"testing"
	"time"

	"darkzone-stats-server/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory store with the service schema.
// A single pooled connection keeps the :memory: database alive and shared
// across the concurrent fan-out queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Player{},
		&models.Weapon{},
		&models.MapStat{},
		&models.GoldLocation{},
		&models.EconomyStat{},
	))
	return db
}

func seedPlayers(t *testing.T, db *gorm.DB, players []models.Player) {
	t.Helper()
	require.NoError(t, db.Create(&players).Error)
}

func seedWeapons(t *testing.T, db *gorm.DB) {
	t.Helper()
	weapons := []models.Weapon{
		{Name: "AK-47", Type: models.WeaponTypeAssaultRifle, Damage: 45, FireRate: 600, Accuracy: 0.75, Recoil: 0.6, MagazineSize: 30, UsageCount: 15420},
		{Name: "AWM", Type: models.WeaponTypeSniperRifle, Damage: 95, FireRate: 40, Accuracy: 0.95, Recoil: 0.9, MagazineSize: 5, UsageCount: 8430},
		{Name: "M24", Type: models.WeaponTypeSniperRifle, Damage: 79, FireRate: 45, Accuracy: 0.92, Recoil: 0.85, MagazineSize: 5, UsageCount: 4210},
		{Name: "MP5", Type: models.WeaponTypeSMG, Damage: 32, FireRate: 900, Accuracy: 0.85, Recoil: 0.45, MagazineSize: 30, UsageCount: 12560},
	}
	require.NoError(t, db.Create(&weapons).Error)
}

func seedMaps(t *testing.T, db *gorm.DB) {
	t.Helper()
	maps := []models.MapStat{
		{MapName: "农场", PlayerCount: 44300, AvgDuration: 18.5, ExtractionRate: 67.8, Difficulty: 3.2, LootQuality: 4.1},
		{MapName: "山谷", PlayerCount: 36100, AvgDuration: 22.3, ExtractionRate: 58.4, Difficulty: 4.5, LootQuality: 3.8},
		{MapName: "北山", PlayerCount: 27800, AvgDuration: 25.7, ExtractionRate: 52.1, Difficulty: 5.2, LootQuality: 4.5},
	}
	require.NoError(t, db.Create(&maps).Error)
}

func somePlayers() []models.Player {
	return []models.Player{
		{Username: "暗区猎手", Level: 85, TotalKills: 15234, TotalExtractions: 8765, TotalCoins: 5234000, PlayTime: 1250},
		{Username: "战术大师", Level: 78, TotalKills: 12345, TotalExtractions: 7654, TotalCoins: 4890000, PlayTime: 1100},
		{Username: "生存专家", Level: 92, TotalKills: 18976, TotalExtractions: 9876, TotalCoins: 6120000, PlayTime: 1450},
		{Username: "突击先锋", Level: 65, TotalKills: 8765, TotalExtractions: 6543, TotalCoins: 3450000, PlayTime: 890},
	}
}

func timePtr(t time.Time) *time.Time { return &t }
