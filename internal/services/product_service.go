package services

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/dto"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	events     *Notifier
	log        *slog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, events *Notifier, log *slog.Logger) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		events:     events,
		log:        log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]dto.ProductDto, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(products), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductDto, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := dto.FromProduct(*product)
	return &out, nil
}

// CreateProduct creates a new product in an existing category.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDto, error) {
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := req.ToModel()
	if err := s.repo.Create(ctx, &product); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolated) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	out := dto.FromProduct(product)
	s.events.Notify(ctx, "product.created", out)
	return &out, nil
}

// UpdateProduct replaces every mutable field of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req dto.CreateProductRequest) (*dto.ProductDto, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.CategoryID != existing.CategoryID {
		if err := s.requireCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	replacement := req.ToModel()
	existing.Name = replacement.Name
	existing.Description = replacement.Description
	existing.Price = replacement.Price
	existing.StockQuantity = replacement.StockQuantity
	existing.CategoryID = replacement.CategoryID

	if err := s.repo.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolated):
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	out := dto.FromProduct(*existing)
	s.events.Notify(ctx, "product.updated", out)
	return &out, nil
}

// DeleteProduct deletes a product by its ID and reports whether it existed.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.events.Notify(ctx, "product.deleted", deletedEvent{ID: id})
	}
	return deleted, nil
}

func (s *ProductService) requireCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.log.InfoContext(ctx, "product rejected: unknown category", "category_id", categoryID)
			return ErrUnknownCategory
		}
		return err
	}
	return nil
}
