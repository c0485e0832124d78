package models

import "time"

// Rating is a single user's score for a game. Removed ratings are kept but
// excluded from the averages shown on catalog rows.
type Rating struct {
	ID         int64 `gorm:"primaryKey"`
	GameID     int64 `gorm:"not null;index"`
	UserID     int64 `gorm:"not null;index"`
	Rating     float64
	Difficulty float64
	Removed    bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Game Game `gorm:"foreignKey:GameID"`
}
