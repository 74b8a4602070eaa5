// models/weapon.go
package models

import "time"

// Weapon category labels as they appear in the game data (assault rifle,
// sniper rifle, SMG, pistol).
const (
	WeaponTypeAssaultRifle = "突击步枪"
	WeaponTypeSniperRifle  = "狙击步枪"
	WeaponTypeSMG          = "冲锋枪"
	WeaponTypePistol       = "手枪"
)

type Weapon struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	Type         string    `json:"type" gorm:"not null"`
	Damage       int       `json:"damage" gorm:"not null"`
	FireRate     float64   `json:"fire_rate" gorm:"not null"` // rounds per minute
	Accuracy     float64   `json:"accuracy" gorm:"not null"`  // 0..1
	Recoil       float64   `json:"recoil" gorm:"not null"`    // 0..1
	MagazineSize int       `json:"magazine_size" gorm:"not null"`
	UsageCount   int       `json:"usage_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}
