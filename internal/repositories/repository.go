package repositories

import (
	"context"
	"errors"
	"time"

	"storefront/internal/models"
)

var (
	// ErrNotFound signals that no row exists for the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey wraps unique-constraint violations raised by the store.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolated wraps foreign-key violations raised by the store.
	ErrForeignKeyViolated = errors.New("foreign key violated")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) (bool, error)
	// HasProducts reports whether any product references the category.
	HasProducts(ctx context.Context, id string) (bool, error)
}

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// now is swapped in tests.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns a timestamp strictly after prev.
func nextUpdatedAt(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

// lastModified returns the most recent stamp of an entity whose UpdatedAt is
// nil until its first update.
func lastModified(created time.Time, updated *time.Time) time.Time {
	if updated != nil {
		return *updated
	}
	return created
}
