package models

import "time"

// NoteResponse represents a note in API responses. Date is rendered as
// YYYY-MM-DD; the owning category is nested as a read-only object.
type NoteResponse struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Date      string                 `json:"date"`
	Category  NestedCategoryResponse `json:"category"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// NoteListResponse is a paginated page of notes.
// Next and Previous are page numbers, nil when there is no such page.
type NoteListResponse struct {
	Count    int            `json:"count"`
	Next     *int           `json:"next"`
	Previous *int           `json:"previous"`
	Results  []NoteResponse `json:"results"`
}
