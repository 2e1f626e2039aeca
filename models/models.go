package models

import (
	"gorm.io/gorm"
)

// PlayCount is one row of the seasonal listening table. Position keeps the
// order rows were imported in, which drives season and genre ordering.
type PlayCount struct {
	gorm.Model
	Position int    `gorm:"not null;index"`
	Season   string `gorm:"not null;uniqueIndex:idx_play_counts_season_genre"`
	Genre    string `gorm:"not null;uniqueIndex:idx_play_counts_season_genre"`
	Count    int64  `gorm:"not null"`
}
