package models

import "time"

// User represents a registered account. Admin gates the catalog mutations
// and the visibility of removed rows.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Admin        bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
