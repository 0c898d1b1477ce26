package entities

import "time"

// Note represents a note entity in the database.
// Category is populated by joined reads so responses can nest the
// owning category without a second query.
type Note struct {
	ID         string    `json:"id"` // UUID
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Date       time.Time `json:"date"` // Day granularity
	CategoryID string    `json:"-"`    // UUID
	UserID     string    `json:"-"`    // Owner, UUID; never exposed
	Category   Category  `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
