package models

import "time"

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Colour     string    `json:"colour"`
	NotesCount int       `json:"notes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NestedCategoryResponse is the reduced category shape nested inside notes
type NestedCategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Colour string `json:"colour"`
}

// CategoryListResponse is a paginated page of categories.
// Next and Previous are page numbers, nil when there is no such page.
type CategoryListResponse struct {
	Count    int                `json:"count"`
	Next     *int               `json:"next"`
	Previous *int               `json:"previous"`
	Results  []CategoryResponse `json:"results"`
}
