// models/economy_stat.go
package models

// EconomyStat is one calendar day of economy totals. Date is "YYYY-MM-DD"
// and unique, so lexical ordering is chronological ordering.
type EconomyStat struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	Date              string  `json:"date" gorm:"uniqueIndex;not null"`
	TotalCoinsEarned  int64   `json:"total_coins_earned" gorm:"default:0"`
	TotalCoinsSpent   int64   `json:"total_coins_spent" gorm:"default:0"`
	AvgCoinsPerPlayer float64 `json:"avg_coins_per_player" gorm:"default:0"`
	TotalItemsTraded  int64   `json:"total_items_traded" gorm:"default:0"`
}
