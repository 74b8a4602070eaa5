// models/player.go
package models

import "time"

// Player is the per-account lifetime record. Rows are written by the game
// ingest pipeline; this service only reads them.
type Player struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Username         string    `json:"username" gorm:"uniqueIndex;not null"`
	Level            int       `json:"level" gorm:"default:1"`
	TotalKills       int       `json:"total_kills" gorm:"default:0"`
	TotalDeaths      int       `json:"total_deaths" gorm:"default:0"`
	TotalExtractions int       `json:"total_extractions" gorm:"default:0"`
	TotalCoins       int64     `json:"total_coins" gorm:"default:0"`
	PlayTime         int       `json:"play_time" gorm:"default:0"` // minutes
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
