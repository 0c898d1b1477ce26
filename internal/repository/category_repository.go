package repository

import (
	"database/sql"
	"fmt"

	"notely-be/internal/entities"
)

// CategoryRepository defines the interface for category database operations.
// Every method takes the owner's user ID explicitly and scopes its SQL to
// that owner; there is no unscoped variant.
type CategoryRepository interface {
	Create(userID, name, colour string) (*entities.Category, error)
	List(userID string, limit, offset int) ([]*entities.Category, int, error)
	FindByID(userID, id string) (*entities.Category, error)
	Update(userID, id, name, colour string) (*entities.Category, error)
	Delete(userID, id string) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category owned by userID
func (r *categoryRepository) Create(userID, name, colour string) (*entities.Category, error) {
	query := `
		INSERT INTO categories (name, colour, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, colour, user_id, created_at, updated_at
	`

	var category entities.Category
	err := r.db.QueryRow(query, name, colour, userID).Scan(
		&category.ID,
		&category.Name,
		&category.Colour,
		&category.UserID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// List retrieves a page of the owner's categories ordered by name, with a
// derived notes_count per category, and the total number of owned categories.
func (r *categoryRepository) List(userID string, limit, offset int) ([]*entities.Category, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	query := `
		SELECT c.id, c.name, c.colour, c.user_id, COUNT(n.id), c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN notes n ON n.category_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		var category entities.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Colour,
			&category.UserID,
			&category.NotesCount,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, total, nil
}

// FindByID retrieves a category only if it is owned by userID.
// A missing id and another user's id both return ErrNotFound.
func (r *categoryRepository) FindByID(userID, id string) (*entities.Category, error) {
	query := `
		SELECT c.id, c.name, c.colour, c.user_id, COUNT(n.id), c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN notes n ON n.category_id = c.id
		WHERE c.id = $1 AND c.user_id = $2
		GROUP BY c.id
	`

	var category entities.Category
	err := r.db.QueryRow(query, id, userID).Scan(
		&category.ID,
		&category.Name,
		&category.Colour,
		&category.UserID,
		&category.NotesCount,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &category, nil
}

// Update rewrites a category's mutable fields. Ownership is re-checked by
// the statement itself, so a concurrent owner change cannot slip through.
func (r *categoryRepository) Update(userID, id, name, colour string) (*entities.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, colour = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, name, colour, user_id,
			(SELECT COUNT(*) FROM notes n WHERE n.category_id = categories.id),
			created_at, updated_at
	`

	var category entities.Category
	err := r.db.QueryRow(query, name, colour, id, userID).Scan(
		&category.ID,
		&category.Name,
		&category.Colour,
		&category.UserID,
		&category.NotesCount,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &category, nil
}

// Delete removes a category owned by userID. Notes referencing it are
// removed by the ON DELETE CASCADE on notes.category_id.
func (r *categoryRepository) Delete(userID, id string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
