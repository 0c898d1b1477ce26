package repository

import "errors"

var (
	// ErrNotFound indicates an entity does not exist in the caller's
	// ownership scope. Rows owned by other users surface as this same
	// error so their existence is never revealed.
	ErrNotFound = errors.New("repository: not found")

	// ErrDuplicateEmail indicates a registration attempt with an email
	// that is already taken.
	ErrDuplicateEmail = errors.New("repository: email already registered")

	// ErrForeignCategory indicates a note referenced a category id that
	// does not resolve within the owner's scope (missing or not theirs).
	ErrForeignCategory = errors.New("repository: category not in owner scope")
)
