package service

import (
	"context"
	"errors"

	"notely-be/internal/cache"
	"notely-be/internal/entities"
	"notely-be/internal/models"
	"notely-be/internal/repository"
)

// NoteService defines the interface for note business logic.
// Every method takes the caller's user ID; category references resolve
// only within that user's own categories.
type NoteService interface {
	Create(userID string, req *models.CreateNoteRequest) (*models.NoteResponse, error)
	List(userID, categoryID string, page, pageSize int) (*models.NoteListResponse, error)
	Get(userID, id string) (*models.NoteResponse, error)
	Update(userID, id string, req *models.CreateNoteRequest) (*models.NoteResponse, error)
	Patch(userID, id string, req *models.PatchNoteRequest) (*models.NoteResponse, error)
	Delete(userID, id string) error
}

type noteService struct {
	repo  repository.NoteRepository
	cache cache.Cache
	ctx   context.Context
}

// NewNoteService creates a new note service
func NewNoteService(repo repository.NoteRepository, cacheClient cache.Cache) NoteService {
	svc := &noteService{
		repo: repo,
		ctx:  context.Background(),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// Create validates and persists a new note owned by userID. The category
// reference must resolve to one of the caller's own categories; anything
// else is a category_id field error, deliberately indistinguishable from
// a category that does not exist at all.
func (s *noteService) Create(userID string, req *models.CreateNoteRequest) (*models.NoteResponse, error) {
	if err := validateNoteTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateNoteContent(req.Content); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	note, err := s.repo.Create(userID, repository.NoteFields{
		Title:      req.Title,
		Content:    req.Content,
		Date:       date,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return nil, mapForeignCategory(err)
	}

	// The category's notes_count changed.
	s.invalidateCategory(userID, note.CategoryID)
	return noteResponse(note), nil
}

// List returns one page of the caller's notes, newest date first.
// categoryID optionally filters to one of the caller's categories.
func (s *noteService) List(userID, categoryID string, page, pageSize int) (*models.NoteListResponse, error) {
	offset := (page - 1) * pageSize
	notes, total, err := s.repo.List(userID, categoryID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	results := make([]models.NoteResponse, 0, len(notes))
	for _, note := range notes {
		results = append(results, *noteResponse(note))
	}

	next, previous := pageLinks(page, pageSize, total)
	return &models.NoteListResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  results,
	}, nil
}

// Get returns a single owned note with its category nested
func (s *noteService) Get(userID, id string) (*models.NoteResponse, error) {
	note, err := s.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	return noteResponse(note), nil
}

// Update replaces all writable fields of an owned note
func (s *noteService) Update(userID, id string, req *models.CreateNoteRequest) (*models.NoteResponse, error) {
	current, err := s.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	if err := validateNoteTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateNoteContent(req.Content); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	// Ownership and the category scope are re-checked by the conditioned
	// UPDATE itself, not the read above.
	note, err := s.repo.Update(userID, id, repository.NoteFields{
		Title:      req.Title,
		Content:    req.Content,
		Date:       date,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return nil, mapForeignCategory(err)
	}

	s.invalidateCategory(userID, current.CategoryID)
	s.invalidateCategory(userID, note.CategoryID)
	return noteResponse(note), nil
}

// Patch applies a partial update. Supplied fields are merged over the
// current entity and the merged result is re-validated before the write.
// An empty patch body is valid: the note is rewritten unchanged and its
// updated_at timestamp refreshes.
func (s *noteService) Patch(userID, id string, req *models.PatchNoteRequest) (*models.NoteResponse, error) {
	current, err := s.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	fields := repository.NoteFields{
		Title:      current.Title,
		Content:    current.Content,
		Date:       current.Date,
		CategoryID: current.CategoryID,
	}
	if req.Title != nil {
		fields.Title = *req.Title
	}
	if req.Content != nil {
		fields.Content = *req.Content
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		fields.Date = date
	}
	if req.CategoryID != nil {
		fields.CategoryID = *req.CategoryID
	}

	if err := validateNoteTitle(fields.Title); err != nil {
		return nil, err
	}
	if err := validateNoteContent(fields.Content); err != nil {
		return nil, err
	}

	note, err := s.repo.Update(userID, id, fields)
	if err != nil {
		return nil, mapForeignCategory(err)
	}

	s.invalidateCategory(userID, current.CategoryID)
	s.invalidateCategory(userID, note.CategoryID)
	return noteResponse(note), nil
}

// Delete removes an owned note
func (s *noteService) Delete(userID, id string) error {
	current, err := s.repo.FindByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(userID, id); err != nil {
		return err
	}

	s.invalidateCategory(userID, current.CategoryID)
	return nil
}

// invalidateCategory drops the cached single-category view whose
// notes_count just changed
func (s *noteService) invalidateCategory(userID, categoryID string) {
	if s.cache != nil {
		_ = s.cache.Delete(s.ctx, categoryCacheKey(userID, categoryID))
	}
}

func mapForeignCategory(err error) error {
	if errors.Is(err, repository.ErrForeignCategory) {
		return newValidationError("category_id", "Invalid category - object does not exist.")
	}
	return err
}

func noteResponse(note *entities.Note) *models.NoteResponse {
	return &models.NoteResponse{
		ID:      note.ID,
		Title:   note.Title,
		Content: note.Content,
		Date:    note.Date.Format(dateLayout),
		Category: models.NestedCategoryResponse{
			ID:     note.Category.ID,
			Name:   note.Category.Name,
			Colour: note.Category.Colour,
		},
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
