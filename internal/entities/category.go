package entities

import "time"

// Category represents a note category entity in the database.
// NotesCount is derived (count of notes referencing the category),
// populated by list/get queries rather than stored.
type Category struct {
	ID         string    `json:"id"` // UUID
	Name       string    `json:"name"`
	Colour     string    `json:"colour"` // Hex colour, #RGB or #RRGGBB
	UserID     string    `json:"-"`      // Owner, UUID; never exposed
	NotesCount int       `json:"notes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
