// models/map_stat.go
package models

import "time"

// MapStat aggregates per-map gameplay statistics.
type MapStat struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	MapName        string    `json:"map_name" gorm:"uniqueIndex;not null"`
	PlayerCount    int       `json:"player_count" gorm:"default:0"`
	AvgDuration    float64   `json:"avg_duration" gorm:"default:0"`    // minutes
	ExtractionRate float64   `json:"extraction_rate" gorm:"default:0"` // percent
	Difficulty     float64   `json:"difficulty" gorm:"default:0"`      // 1..10
	LootQuality    float64   `json:"loot_quality" gorm:"default:0"`    // 1..5
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
