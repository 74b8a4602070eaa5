package services

import (
	"context"
	"testing"
	"time"

	"darkzone-stats-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStats(t *testing.T) {
	db := setupTestDB(t)
	seedPlayers(t, db, somePlayers())
	seedMaps(t, db)

	// one stale player should drop out of the active count
	require.NoError(t, db.Model(&models.Player{}).
		Where("username = ?", "突击先锋").
		UpdateColumn("updated_at", time.Now().Add(-30*24*time.Hour)).Error)

	s := NewStatsService(db)
	stats, err := s.PlayerStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalPlayers)
	assert.Equal(t, int64(3), stats.ActivePlayers)
	assert.Equal(t, 80.0, stats.AvgLevel) // (85+78+92+65)/4
	assert.Equal(t, 1173, stats.AvgPlayTime)

	require.Len(t, stats.TopMaps, 3)
	assert.Equal(t, "农场", stats.TopMaps[0].Name) // most played first

	var sum float64
	for _, m := range stats.TopMaps {
		sum += m.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.1*float64(len(stats.TopMaps)))
}

func TestPlayerStatsEmptyStore(t *testing.T) {
	db := setupTestDB(t)

	s := NewStatsService(db)
	stats, err := s.PlayerStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalPlayers)
	assert.Equal(t, 0.0, stats.AvgLevel)
	assert.Empty(t, stats.TopMaps) // no maps, no division by zero
}

func TestMapPreferences(t *testing.T) {
	db := setupTestDB(t)
	seedMaps(t, db)

	s := NewStatsService(db)
	maps, err := s.MapPreferences(context.Background())
	require.NoError(t, err)

	require.Len(t, maps, 3)
	for i := 1; i < len(maps); i++ {
		assert.GreaterOrEqual(t, maps[i-1].PlayerCount, maps[i].PlayerCount)
	}
	for _, m := range maps {
		assert.NotEmpty(t, m.Slug, "map %s should carry an ASCII slug", m.Name)
	}
}

func TestGoldSpawnRate(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	locations := []models.GoldLocation{
		{MapName: "农场", LocationName: "主楼顶层", SpawnRate: 85, LastSeen: timePtr(now.Add(-30 * time.Second))},
		{MapName: "农场", LocationName: "温室", SpawnRate: 65, LastSeen: timePtr(now.Add(-5 * time.Minute))},
		{MapName: "山谷", LocationName: "别墅二楼", SpawnRate: 88, LastSeen: timePtr(now.Add(-3 * time.Hour))},
		{MapName: "山谷", LocationName: "加油站", SpawnRate: 63, LastSeen: nil},
	}
	require.NoError(t, db.Create(&locations).Error)

	s := NewStatsService(db)
	resp, err := s.GoldSpawnRate(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Maps, 2)

	byMap := make(map[string]MapGold)
	for _, m := range resp.Maps {
		byMap[m.Name] = m
	}

	farm := byMap["农场"]
	require.Len(t, farm.GoldLocations, 2)
	// spawn_rate descending within a map
	assert.Equal(t, "主楼顶层", farm.GoldLocations[0].Location)
	assert.Equal(t, "just now", farm.GoldLocations[0].LastSeen)
	assert.Equal(t, "5 minutes ago", farm.GoldLocations[1].LastSeen)

	valley := byMap["山谷"]
	require.Len(t, valley.GoldLocations, 2)
	assert.Equal(t, "3 hours ago", valley.GoldLocations[0].LastSeen)
	assert.Equal(t, "unknown", valley.GoldLocations[1].LastSeen)
}

func TestWeaponList(t *testing.T) {
	db := setupTestDB(t)
	seedWeapons(t, db)
	s := NewStatsService(db)

	tests := []struct {
		name       string
		weaponType string
		sortBy     string
		wantCount  int
		check      func(t *testing.T, weapons []models.Weapon)
	}{
		{
			name:      "default order is usage_count desc",
			wantCount: 4,
			check: func(t *testing.T, weapons []models.Weapon) {
				for i := 1; i < len(weapons); i++ {
					assert.GreaterOrEqual(t, weapons[i-1].UsageCount, weapons[i].UsageCount)
				}
			},
		},
		{
			name:       "exact type filter",
			weaponType: models.WeaponTypeSniperRifle,
			wantCount:  2,
			check: func(t *testing.T, weapons []models.Weapon) {
				for _, w := range weapons {
					assert.Equal(t, models.WeaponTypeSniperRifle, w.Type)
				}
			},
		},
		{
			name:      "sort by damage",
			sortBy:    "damage",
			wantCount: 4,
			check: func(t *testing.T, weapons []models.Weapon) {
				for i := 1; i < len(weapons); i++ {
					assert.GreaterOrEqual(t, weapons[i-1].Damage, weapons[i].Damage)
				}
			},
		},
		{
			name:      "unknown sort column falls back to default",
			sortBy:    "damage; DROP TABLE weapons",
			wantCount: 4,
			check: func(t *testing.T, weapons []models.Weapon) {
				for i := 1; i < len(weapons); i++ {
					assert.GreaterOrEqual(t, weapons[i-1].UsageCount, weapons[i].UsageCount)
				}
			},
		},
		{
			name:       "no matching type yields empty list",
			weaponType: "霰弹枪",
			wantCount:  0,
			check: func(t *testing.T, weapons []models.Weapon) {
				assert.NotNil(t, weapons)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weapons, err := s.WeaponList(context.Background(), tt.weaponType, tt.sortBy)
			require.NoError(t, err)
			require.Len(t, weapons, tt.wantCount)
			tt.check(t, weapons)
		})
	}
}

func TestEconomyStats(t *testing.T) {
	db := setupTestDB(t)
	var rows []models.EconomyStat
	for i := 0; i < 10; i++ {
		rows = append(rows, models.EconomyStat{
			Date:             time.Now().AddDate(0, 0, -i).Format("2006-01-02"),
			TotalCoinsEarned: int64(1000 * (i + 1)),
		})
	}
	require.NoError(t, db.Create(&rows).Error)

	s := NewStatsService(db)
	stats, err := s.EconomyStats(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, stats, 7)
	for i := 1; i < len(stats); i++ {
		assert.Less(t, stats[i-1].Date, stats[i].Date, "rows should be chronological")
	}
	// the 7 most recent days survive the cut
	assert.Equal(t, time.Now().Format("2006-01-02"), stats[len(stats)-1].Date)
}

func TestLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	seedPlayers(t, db, somePlayers())
	s := NewStatsService(db)

	t.Run("coins category", func(t *testing.T) {
		resp, err := s.Leaderboard(context.Background(), "coins", 3)
		require.NoError(t, err)

		assert.Equal(t, "coins", resp.Category)
		require.Len(t, resp.Players, 3)
		for i, p := range resp.Players {
			assert.Equal(t, i+1, p.Rank)
			assert.Equal(t, p.Stats.Coins, p.Score)
		}
		for i := 1; i < len(resp.Players); i++ {
			assert.GreaterOrEqual(t, resp.Players[i-1].Score, resp.Players[i].Score)
		}
		assert.Equal(t, "生存专家", resp.Players[0].Username)
	})

	t.Run("limit beyond store size", func(t *testing.T) {
		resp, err := s.Leaderboard(context.Background(), "level", 50)
		require.NoError(t, err)
		assert.Len(t, resp.Players, 4)
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := s.Leaderboard(context.Background(), "deaths", 10)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestRound1(t *testing.T) {
	assert.InDelta(t, 33.3, round1(100.0/3.0), 1e-9)
	assert.InDelta(t, 50.0, round1(50.0), 1e-9)
	assert.InDelta(t, 12.5, round1(12.46), 1e-9)
}
