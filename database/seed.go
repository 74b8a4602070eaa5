// database/seed.go
package database

import (
	"math/rand"
	"time"

	"darkzone-stats-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed inserts the sample gameplay data set. It is idempotent: existing
// rows are left alone (matching on the unique keys), so a restart never
// duplicates or resets data.
func Seed(db *gorm.DB) error {
	now := time.Now()
	ignore := clause.OnConflict{DoNothing: true}

	weapons := []models.Weapon{
		{Name: "AK-47", Type: models.WeaponTypeAssaultRifle, Damage: 45, FireRate: 600, Accuracy: 0.75, Recoil: 0.6, MagazineSize: 30, UsageCount: 15420},
		{Name: "M4A1", Type: models.WeaponTypeAssaultRifle, Damage: 42, FireRate: 750, Accuracy: 0.82, Recoil: 0.55, MagazineSize: 30, UsageCount: 18250},
		{Name: "AWM", Type: models.WeaponTypeSniperRifle, Damage: 95, FireRate: 40, Accuracy: 0.95, Recoil: 0.9, MagazineSize: 5, UsageCount: 8430},
		{Name: "MP5", Type: models.WeaponTypeSMG, Damage: 32, FireRate: 900, Accuracy: 0.85, Recoil: 0.45, MagazineSize: 30, UsageCount: 12560},
		{Name: "USP", Type: models.WeaponTypePistol, Damage: 25, FireRate: 400, Accuracy: 0.78, Recoil: 0.35, MagazineSize: 15, UsageCount: 9230},
	}
	if err := db.Clauses(ignore).Create(&weapons).Error; err != nil {
		return err
	}

	maps := []models.MapStat{
		{MapName: "农场", PlayerCount: 44300, AvgDuration: 18.5, ExtractionRate: 67.8, Difficulty: 3.2, LootQuality: 4.1},
		{MapName: "山谷", PlayerCount: 36100, AvgDuration: 22.3, ExtractionRate: 58.4, Difficulty: 4.5, LootQuality: 3.8},
		{MapName: "北山", PlayerCount: 27800, AvgDuration: 25.7, ExtractionRate: 52.1, Difficulty: 5.2, LootQuality: 4.5},
		{MapName: "前线要塞", PlayerCount: 17600, AvgDuration: 28.4, ExtractionRate: 45.6, Difficulty: 6.0, LootQuality: 5.0},
	}
	if err := db.Clauses(ignore).Create(&maps).Error; err != nil {
		return err
	}

	seen := func(agoMinutes int) *time.Time {
		t := now.Add(-time.Duration(agoMinutes) * time.Minute)
		return &t
	}
	goldLocations := []models.GoldLocation{
		{MapName: "农场", LocationName: "主楼顶层", SpawnRate: 85, LastSeen: seen(2)},
		{MapName: "农场", LocationName: "粮仓地下室", SpawnRate: 72, LastSeen: seen(5)},
		{MapName: "农场", LocationName: "拖拉机库", SpawnRate: 68, LastSeen: seen(8)},
		{MapName: "农场", LocationName: "温室", SpawnRate: 65, LastSeen: seen(12)},
		{MapName: "山谷", LocationName: "别墅二楼", SpawnRate: 88, LastSeen: seen(1)},
		{MapName: "山谷", LocationName: "军火库", SpawnRate: 76, LastSeen: seen(4)},
		{MapName: "山谷", LocationName: "防空洞", SpawnRate: 71, LastSeen: seen(7)},
		{MapName: "山谷", LocationName: "加油站", SpawnRate: 63, LastSeen: seen(10)},
		{MapName: "北山", LocationName: "酒店顶层", SpawnRate: 90, LastSeen: seen(3)},
		{MapName: "北山", LocationName: "科研中心", SpawnRate: 82, LastSeen: seen(6)},
		{MapName: "北山", LocationName: "发电厂", SpawnRate: 75, LastSeen: seen(9)},
		{MapName: "北山", LocationName: "矿场", SpawnRate: 69, LastSeen: seen(11)},
		{MapName: "前线要塞", LocationName: "指挥中心", SpawnRate: 92, LastSeen: seen(2)},
		{MapName: "前线要塞", LocationName: "军械库", SpawnRate: 84, LastSeen: seen(5)},
		{MapName: "前线要塞", LocationName: "监狱", SpawnRate: 78, LastSeen: seen(8)},
		{MapName: "前线要塞", LocationName: "兵营", SpawnRate: 72, LastSeen: seen(10)},
	}
	if err := db.Clauses(ignore).Create(&goldLocations).Error; err != nil {
		return err
	}

	players := []models.Player{
		{Username: "暗区猎手", Level: 85, TotalKills: 15234, TotalDeaths: 3421, TotalExtractions: 8765, TotalCoins: 5234000, PlayTime: 1250},
		{Username: "战术大师", Level: 78, TotalKills: 12345, TotalDeaths: 4567, TotalExtractions: 7654, TotalCoins: 4890000, PlayTime: 1100},
		{Username: "生存专家", Level: 92, TotalKills: 18976, TotalDeaths: 2345, TotalExtractions: 9876, TotalCoins: 6120000, PlayTime: 1450},
		{Username: "突击先锋", Level: 65, TotalKills: 8765, TotalDeaths: 5678, TotalExtractions: 6543, TotalCoins: 3450000, PlayTime: 890},
		{Username: "狙击之王", Level: 88, TotalKills: 16543, TotalDeaths: 3210, TotalExtractions: 8901, TotalCoins: 5670000, PlayTime: 1320},
	}
	if err := db.Clauses(ignore).Create(&players).Error; err != nil {
		return err
	}

	var economy []models.EconomyStat
	for i := 0; i < 30; i++ {
		economy = append(economy, models.EconomyStat{
			Date:              now.AddDate(0, 0, -i).Format("2006-01-02"),
			TotalCoinsEarned:  int64(rand.Intn(5000000)) + 10000000,
			TotalCoinsSpent:   int64(rand.Intn(3000000)) + 5000000,
			AvgCoinsPerPlayer: float64(rand.Intn(50000) + 30000),
			TotalItemsTraded:  int64(rand.Intn(100000)) + 50000,
		})
	}
	return db.Clauses(ignore).Create(&economy).Error
}
