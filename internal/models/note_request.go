package models

// CreateNoteRequest represents the request body for creating a note.
// Also used for PUT (full update). Date is a YYYY-MM-DD string; parsing
// happens in the service so a bad value surfaces as a field error.
type CreateNoteRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Content    string `json:"content" binding:"required"`
	Date       string `json:"date" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// PatchNoteRequest represents the request body for a partial note update
type PatchNoteRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Date       *string `json:"date,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}
