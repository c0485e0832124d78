package models

import "time"

// GameList is a user-curated, ordered collection of games.
type GameList struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	Name        string `gorm:"size:255;not null"`
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameListEntry is the membership row tying a game to a list. The composite
// primary key is what makes concurrent duplicate adds collapse into one row.
type GameListEntry struct {
	GameListID int64 `gorm:"primaryKey;autoIncrement:false"`
	GameID     int64 `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
}
