package model

import "time"

// Account represents a registered user who owns a reading list.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:30;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Books []Book `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
