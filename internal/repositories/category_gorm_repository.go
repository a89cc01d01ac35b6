package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves all categories, oldest first.
func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = now()
	category.UpdatedAt = nil
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

// Update replaces the mutable columns of an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Category
		if err := tx.First(&existing, "id = ?", category.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("category with ID %s not found for update: %w", category.ID, ErrNotFound)
			}
			return fmt.Errorf("failed to load category %s for update: %w", category.ID, err)
		}

		stamp := nextUpdatedAt(lastModified(existing.CreatedAt, existing.UpdatedAt))
		category.CreatedAt = existing.CreatedAt
		category.UpdatedAt = &stamp

		if err := tx.Save(category).Error; err != nil {
			return fmt.Errorf("failed to update category: %w", translate(err))
		}
		return nil
	})
}

// Delete hard-deletes a category. A category still referenced by products is
// refused by the store with ErrForeignKeyViolated.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete category: %w", translate(res.Error))
	}
	return res.RowsAffected > 0, nil
}

// HasProducts reports whether any product references the category.
func (r *GORMCategoryRepository) HasProducts(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count products of category %s: %w", id, err)
	}
	return count > 0, nil
}
