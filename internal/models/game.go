package models

import "time"

// Game represents a catalog entry. Removal is a soft-delete flag, not a
// physical delete; removed rows stay queryable for administrators.
type Game struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null;index"`
	SortName    string `gorm:"size:255;not null;index"`
	Description string
	URL         string `gorm:"size:512"`

	// AuthorRaw holds the author names as stored: a single name, or
	// space-separated names when Collab is set.
	AuthorRaw string `gorm:"size:512"`
	Collab    bool   `gorm:"not null;default:false"`

	// DateCreated is the release date. The zero value means "unknown" and
	// is nulled out before a row reaches a client.
	DateCreated time.Time `gorm:"index"`

	Removed   bool `gorm:"not null;default:false;index"`
	AddedByID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatedGame is a Game row joined with the averages of its non-removed
// ratings. Both averages are nil when the game has no qualifying ratings.
type RatedGame struct {
	Game
	Rating     *float64
	Difficulty *float64
}
