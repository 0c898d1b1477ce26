package models

// CreateCategoryRequest represents the request body for creating a category.
// Also used for PUT (full update), where every field is required again.
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Colour string `json:"colour" binding:"required"`
}

// PatchCategoryRequest represents the request body for a partial category
// update. Pointers distinguish "field omitted" from "field set to zero value".
type PatchCategoryRequest struct {
	Name   *string `json:"name,omitempty"`
	Colour *string `json:"colour,omitempty"`
}
