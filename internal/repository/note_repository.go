package repository

import (
	"database/sql"
	"fmt"
	"time"

	"notely-be/internal/entities"
)

// NoteFields holds the writable fields of a note for create/update
type NoteFields struct {
	Title      string
	Content    string
	Date       time.Time
	CategoryID string
}

// NoteRepository defines the interface for note database operations.
// Every method takes the owner's user ID explicitly; the category reference
// is resolved inside the owner's scope by the statements themselves.
type NoteRepository interface {
	Create(userID string, fields NoteFields) (*entities.Note, error)
	List(userID, categoryID string, limit, offset int) ([]*entities.Note, int, error)
	FindByID(userID, id string) (*entities.Note, error)
	Update(userID, id string, fields NoteFields) (*entities.Note, error)
	Delete(userID, id string) error
}

type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create inserts a new note owned by userID. The INSERT selects from the
// owner's categories, so a category id that is missing or belongs to
// another user produces zero rows and ErrForeignCategory; the note owner
// and category owner can never diverge.
func (r *noteRepository) Create(userID string, fields NoteFields) (*entities.Note, error) {
	query := `
		INSERT INTO notes (title, content, date, category_id, user_id)
		SELECT $1, $2, $3, c.id, c.user_id
		FROM categories c
		WHERE c.id = $4 AND c.user_id = $5
		RETURNING id
	`

	var id string
	err := r.db.QueryRow(query, fields.Title, fields.Content, fields.Date, fields.CategoryID, userID).Scan(&id)
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrForeignCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return r.FindByID(userID, id)
}

// List retrieves a page of the owner's notes ordered by date descending,
// with the owning category joined in, and the total matching count.
// categoryID optionally restricts the page to one category; because every
// note row is already owner-filtered, the filter cannot reach another
// user's notes whatever id is supplied.
func (r *noteRepository) List(userID, categoryID string, limit, offset int) ([]*entities.Note, int, error) {
	countQuery := `SELECT COUNT(*) FROM notes WHERE user_id = $1`
	countArgs := []interface{}{userID}
	query := `
		SELECT n.id, n.title, n.content, n.date, n.category_id, n.user_id,
			n.created_at, n.updated_at, c.name, c.colour
		FROM notes n
		JOIN categories c ON c.id = n.category_id
		WHERE n.user_id = $1
		ORDER BY n.date DESC
		LIMIT $2 OFFSET $3
	`
	args := []interface{}{userID, limit, offset}

	if categoryID != "" {
		countQuery = `SELECT COUNT(*) FROM notes WHERE user_id = $1 AND category_id = $2`
		countArgs = []interface{}{userID, categoryID}
		query = `
			SELECT n.id, n.title, n.content, n.date, n.category_id, n.user_id,
				n.created_at, n.updated_at, c.name, c.colour
			FROM notes n
			JOIN categories c ON c.id = n.category_id
			WHERE n.user_id = $1 AND n.category_id = $2
			ORDER BY n.date DESC
			LIMIT $3 OFFSET $4
		`
		args = []interface{}{userID, categoryID, limit, offset}
	}

	var total int
	if err := r.db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			// A malformed category filter can never match a note.
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*entities.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, total, nil
}

// FindByID retrieves a note only if it is owned by userID.
// A missing id and another user's id both return ErrNotFound.
func (r *noteRepository) FindByID(userID, id string) (*entities.Note, error) {
	query := `
		SELECT n.id, n.title, n.content, n.date, n.category_id, n.user_id,
			n.created_at, n.updated_at, c.name, c.colour
		FROM notes n
		JOIN categories c ON c.id = n.category_id
		WHERE n.id = $1 AND n.user_id = $2
	`

	note, err := scanNote(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return note, nil
}

// Update rewrites a note's writable fields in a single conditioned
// statement: the note must still be owned by userID and the new category
// must resolve within that same scope at the moment of the write. When the
// statement matches no row, an owner-scoped probe of the note decides
// between ErrNotFound (note missing or foreign) and ErrForeignCategory.
func (r *noteRepository) Update(userID, id string, fields NoteFields) (*entities.Note, error) {
	query := `
		UPDATE notes
		SET title = $1, content = $2, date = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		AND EXISTS (
			SELECT 1 FROM categories c WHERE c.id = $4 AND c.user_id = $6
		)
		RETURNING id
	`

	var updatedID string
	err := r.db.QueryRow(query, fields.Title, fields.Content, fields.Date, fields.CategoryID, id, userID).Scan(&updatedID)
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		var exists bool
		probe := r.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM notes WHERE id = $1 AND user_id = $2)
		`, id, userID).Scan(&exists)
		if probe == nil && exists {
			return nil, ErrForeignCategory
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return r.FindByID(userID, updatedID)
}

// Delete removes a note owned by userID
func (r *noteRepository) Delete(userID, id string) error {
	result, err := r.db.Exec(`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.Date,
		&note.CategoryID,
		&note.UserID,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.Category.Name,
		&note.Category.Colour,
	)
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	note.Category.ID = note.CategoryID
	note.Category.UserID = note.UserID
	return &note, nil
}
