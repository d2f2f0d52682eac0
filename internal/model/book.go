package model

import "time"

// BookStatus represents the reading status of a book.
type BookStatus string

const (
	StatusToRead  BookStatus = "to-read"
	StatusReading BookStatus = "reading"
	StatusRead    BookStatus = "read"
)

// ValidStatus reports whether s is one of the known reading statuses.
func ValidStatus(s BookStatus) bool {
	switch s {
	case StatusToRead, StatusReading, StatusRead:
		return true
	}
	return false
}

// Book represents one entry in an account's reading list.
type Book struct {
	// Title, author, genre and status carry a binary collation so equality
	// filters and the aggregate GROUP BYs treat "Dune" and "dune" as
	// distinct values, which MySQL's default utf8mb4 collation would merge.
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"type:varchar(255) COLLATE utf8mb4_bin;not null"`
	Author    string     `json:"author" gorm:"type:varchar(255) COLLATE utf8mb4_bin"`
	Genre     string     `json:"genre" gorm:"type:varchar(100) COLLATE utf8mb4_bin;index"`
	Status    BookStatus `json:"status" gorm:"type:varchar(20) COLLATE utf8mb4_bin;not null;default:'to-read';index"`
	Notes     string     `json:"notes" gorm:"size:1000"`
	OwnerID   uint       `json:"owner_id" gorm:"not null;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
