// models/gold_location.go
package models

import "time"

// GoldLocation is a tracked high-value loot spot. SpawnRate is a 0..100
// likelihood estimate; LastSeen is nil when the spot has never been sighted.
type GoldLocation struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	MapName      string     `json:"map_name" gorm:"not null;uniqueIndex:idx_map_location"`
	LocationName string     `json:"location_name" gorm:"not null;uniqueIndex:idx_map_location"`
	SpawnRate    float64    `json:"spawn_rate" gorm:"default:0"`
	LastSeen     *time.Time `json:"last_seen"`
}
