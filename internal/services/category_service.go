package services

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/dto"
	"storefront/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo   repositories.CategoryRepository
	events *Notifier
	log    *slog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, events *Notifier, log *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, events: events, log: log}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]dto.CategoryDto, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromCategories(categories), nil
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*dto.CategoryDto, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := dto.FromCategory(*category)
	return &out, nil
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryDto, error) {
	category := req.ToModel()
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	out := dto.FromCategory(category)
	s.events.Notify(ctx, "category.created", out)
	return &out, nil
}

// UpdateCategory replaces the mutable fields of an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req dto.CreateCategoryRequest) (*dto.CategoryDto, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := dto.FromCategory(*existing)
	s.events.Notify(ctx, "category.updated", out)
	return &out, nil
}

// DeleteCategory deletes a category that no product references. It reports
// whether the category existed.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	inUse, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return false, err
	}
	if inUse {
		s.log.InfoContext(ctx, "category delete rejected: still has products", "category_id", id)
		return false, ErrCategoryInUse
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolated) {
			return false, ErrCategoryInUse
		}
		return false, err
	}
	if deleted {
		s.events.Notify(ctx, "category.deleted", deletedEvent{ID: id})
	}
	return deleted, nil
}
