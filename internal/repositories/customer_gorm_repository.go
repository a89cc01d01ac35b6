package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{db: db}
}

// GetAll retrieves all customers ordered by ID.
func (r *GORMCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a customer by ID.
func (r *GORMCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by email.
func (r *GORMCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by email %s: %w", email, err)
	}
	return &customer, nil
}

// Create inserts a customer. Both timestamps are stamped with the same instant.
func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	customer.ID = 0
	customer.CreatedAt = now()
	customer.UpdatedAt = customer.CreatedAt
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", translate(err))
	}
	return nil
}

// Update replaces the mutable columns of an existing customer.
func (r *GORMCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Customer
		if err := tx.First(&existing, "id = ?", customer.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("customer with ID %d not found for update: %w", customer.ID, ErrNotFound)
			}
			return fmt.Errorf("failed to load customer %d for update: %w", customer.ID, err)
		}

		customer.CreatedAt = existing.CreatedAt
		customer.UpdatedAt = nextUpdatedAt(existing.UpdatedAt)

		if err := tx.Save(customer).Error; err != nil {
			return fmt.Errorf("failed to update customer: %w", translate(err))
		}
		return nil
	})
}

// Delete hard-deletes a customer by ID.
func (r *GORMCustomerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete customer: %w", translate(res.Error))
	}
	return res.RowsAffected > 0, nil
}
