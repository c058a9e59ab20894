package models

import (
	"gorm.io/gorm"
)

// GormPlayer is the per-name leaderboard row.
type GormPlayer struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null"`
	Games    int    `gorm:"default:0"`
	Wins     int    `gorm:"default:0"`
	Winnings int64  `gorm:"default:0"`
}

// GormGameRecord is the stored summary of one finished game.
type GormGameRecord struct {
	gorm.Model
	RoomID     string                 `gorm:"index;not null"`
	WinnerName string                 `gorm:"not null"`
	Players    map[string]interface{} `gorm:"type:jsonb"`
	RollCount  int                    `gorm:"default:0"`
	Doubles    int                    `gorm:"default:0"`
	Auctions   int                    `gorm:"default:0"`
	Trades     int                    `gorm:"default:0"`
}
