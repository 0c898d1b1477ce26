package service

import (
	"context"
	"fmt"
	"time"

	"notely-be/internal/cache"
	"notely-be/internal/entities"
	"notely-be/internal/models"
	"notely-be/internal/repository"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryService defines the interface for category business logic.
// Every method takes the caller's user ID; there is no way to reach
// another user's categories through this interface.
type CategoryService interface {
	Create(userID string, req *models.CreateCategoryRequest) (*models.CategoryResponse, error)
	List(userID string, page, pageSize int) (*models.CategoryListResponse, error)
	Get(userID, id string) (*models.CategoryResponse, error)
	Update(userID, id string, req *models.CreateCategoryRequest) (*models.CategoryResponse, error)
	Patch(userID, id string, req *models.PatchCategoryRequest) (*models.CategoryResponse, error)
	Delete(userID, id string) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.Cache
	ctx   context.Context
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository, cacheClient cache.Cache) CategoryService {
	svc := &categoryService{
		repo: repo,
		ctx:  context.Background(),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func categoryCacheKey(userID, id string) string {
	return fmt.Sprintf("category:%s:%s", userID, id)
}

// Create validates and persists a new category owned by userID
func (s *categoryService) Create(userID string, req *models.CreateCategoryRequest) (*models.CategoryResponse, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}
	if err := validateColour(req.Colour); err != nil {
		return nil, err
	}

	category, err := s.repo.Create(userID, req.Name, req.Colour)
	if err != nil {
		return nil, err
	}

	return categoryResponse(category), nil
}

// List returns one page of the caller's categories with notes counts
func (s *categoryService) List(userID string, page, pageSize int) (*models.CategoryListResponse, error) {
	offset := (page - 1) * pageSize
	categories, total, err := s.repo.List(userID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	results := make([]models.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		results = append(results, *categoryResponse(category))
	}

	next, previous := pageLinks(page, pageSize, total)
	return &models.CategoryListResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  results,
	}, nil
}

// Get returns a single owned category, from cache when possible
func (s *categoryService) Get(userID, id string) (*models.CategoryResponse, error) {
	if s.cache != nil {
		var cached models.CategoryResponse
		if err := s.cache.GetJSON(s.ctx, categoryCacheKey(userID, id), &cached); err == nil {
			return &cached, nil
		}
	}

	category, err := s.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	response := categoryResponse(category)
	if s.cache != nil {
		_ = s.cache.SetJSON(s.ctx, categoryCacheKey(userID, id), response, categoryCacheTTL)
	}
	return response, nil
}

// Update replaces all mutable fields of an owned category
func (s *categoryService) Update(userID, id string, req *models.CreateCategoryRequest) (*models.CategoryResponse, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}
	if err := validateColour(req.Colour); err != nil {
		return nil, err
	}

	category, err := s.repo.Update(userID, id, req.Name, req.Colour)
	if err != nil {
		return nil, err
	}

	s.invalidate(userID, id)
	return categoryResponse(category), nil
}

// Patch applies a partial update. Supplied fields are merged over the
// current entity and the merged result is re-validated before the write.
func (s *categoryService) Patch(userID, id string, req *models.PatchCategoryRequest) (*models.CategoryResponse, error) {
	current, err := s.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if req.Name != nil {
		name = *req.Name
	}
	colour := current.Colour
	if req.Colour != nil {
		colour = *req.Colour
	}

	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateColour(colour); err != nil {
		return nil, err
	}

	// Ownership is re-checked by the conditioned UPDATE, not the read above.
	category, err := s.repo.Update(userID, id, name, colour)
	if err != nil {
		return nil, err
	}

	s.invalidate(userID, id)
	return categoryResponse(category), nil
}

// Delete removes an owned category and, via cascade, its notes
func (s *categoryService) Delete(userID, id string) error {
	if err := s.repo.Delete(userID, id); err != nil {
		return err
	}
	s.invalidate(userID, id)
	return nil
}

func (s *categoryService) invalidate(userID, id string) {
	if s.cache != nil {
		_ = s.cache.Delete(s.ctx, categoryCacheKey(userID, id))
	}
}

func categoryResponse(category *entities.Category) *models.CategoryResponse {
	return &models.CategoryResponse{
		ID:         category.ID,
		Name:       category.Name,
		Colour:     category.Colour,
		NotesCount: category.NotesCount,
		CreatedAt:  category.CreatedAt,
		UpdatedAt:  category.UpdatedAt,
	}
}
