package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process store shared by the memory repositories. It
// enforces the same constraints as the relational schema: products must
// reference an existing category, categories with products cannot be
// deleted, and customer emails are unique.
type MemoryStore struct {
	mu             sync.RWMutex
	products       map[string]models.Product
	categories     map[string]models.Category
	customers      map[uint]models.Customer
	nextCustomerID uint
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[string]models.Product),
		categories: make(map[string]models.Category),
		customers:  make(map[uint]models.Customer),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	store *MemoryStore
}

// NewMemoryProductRepository creates a product repository backed by store.
func NewMemoryProductRepository(store *MemoryStore) *MemoryProductRepository {
	return &MemoryProductRepository{store: store}
}

// GetAll returns all products, oldest first.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		p.Description = cloneString(p.Description)
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		if productList[i].CreatedAt.Equal(productList[j].CreatedAt) {
			return productList[i].ID < productList[j].ID
		}
		return productList[i].CreatedAt.Before(productList[j].CreatedAt)
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product.Description = cloneString(product.Description)
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[product.CategoryID]; !ok {
		return fmt.Errorf("failed to create product: category %s: %w", product.CategoryID, ErrForeignKeyViolated)
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.store.products[product.ID]; exists {
		return fmt.Errorf("failed to create product: ID %s: %w", product.ID, ErrDuplicateKey)
	}
	product.CreatedAt = now()
	product.UpdatedAt = nil

	stored := *product
	stored.Description = cloneString(product.Description)
	r.store.products[product.ID] = stored
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	if _, ok := r.store.categories[product.CategoryID]; !ok {
		return fmt.Errorf("failed to update product: category %s: %w", product.CategoryID, ErrForeignKeyViolated)
	}

	stamp := nextUpdatedAt(lastModified(existing.CreatedAt, existing.UpdatedAt))
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = &stamp

	stored := *product
	stored.Description = cloneString(product.Description)
	r.store.products[product.ID] = stored
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return false, nil
	}
	delete(r.store.products, id)
	return true, nil
}

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	store *MemoryStore
}

// NewMemoryCategoryRepository creates a category repository backed by store.
func NewMemoryCategoryRepository(store *MemoryStore) *MemoryCategoryRepository {
	return &MemoryCategoryRepository{store: store}
}

// GetAll returns all categories, oldest first.
func (r *MemoryCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		c.Description = cloneString(c.Description)
		categoryList = append(categoryList, c)
	}
	sort.Slice(categoryList, func(i, j int) bool {
		if categoryList[i].CreatedAt.Equal(categoryList[j].CreatedAt) {
			return categoryList[i].ID < categoryList[j].ID
		}
		return categoryList[i].CreatedAt.Before(categoryList[j].CreatedAt)
	})
	return categoryList, nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	category.Description = cloneString(category.Description)
	return &category, nil
}

// Create adds a new category.
func (r *MemoryCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if _, exists := r.store.categories[category.ID]; exists {
		return fmt.Errorf("failed to create category: ID %s: %w", category.ID, ErrDuplicateKey)
	}
	category.CreatedAt = now()
	category.UpdatedAt = nil

	stored := *category
	stored.Description = cloneString(category.Description)
	r.store.categories[category.ID] = stored
	return nil
}

// Update modifies an existing category.
func (r *MemoryCategoryRepository) Update(_ context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.categories[category.ID]
	if !ok {
		return fmt.Errorf("category with ID %s not found for update: %w", category.ID, ErrNotFound)
	}

	stamp := nextUpdatedAt(lastModified(existing.CreatedAt, existing.UpdatedAt))
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = &stamp

	stored := *category
	stored.Description = cloneString(category.Description)
	r.store.categories[category.ID] = stored
	return nil
}

// Delete removes a category. Categories still referenced by a product are
// refused with ErrForeignKeyViolated.
func (r *MemoryCategoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return false, nil
	}
	for _, p := range r.store.products {
		if p.CategoryID == id {
			return false, fmt.Errorf("failed to delete category %s: %w", id, ErrForeignKeyViolated)
		}
	}
	delete(r.store.categories, id)
	return true, nil
}

// HasProducts reports whether any product references the category.
func (r *MemoryCategoryRepository) HasProducts(_ context.Context, id string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.CategoryID == id {
			return true, nil
		}
	}
	return false, nil
}

// MemoryCustomerRepository is an in-memory implementation of CustomerRepository.
type MemoryCustomerRepository struct {
	store *MemoryStore
}

// NewMemoryCustomerRepository creates a customer repository backed by store.
func NewMemoryCustomerRepository(store *MemoryStore) *MemoryCustomerRepository {
	return &MemoryCustomerRepository{store: store}
}

// GetAll returns all customers ordered by ID.
func (r *MemoryCustomerRepository) GetAll(_ context.Context) ([]models.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		c.PhoneNumber = cloneString(c.PhoneNumber)
		customerList = append(customerList, c)
	}
	sort.Slice(customerList, func(i, j int) bool { return customerList[i].ID < customerList[j].ID })
	return customerList, nil
}

// GetByID returns a customer by ID.
func (r *MemoryCustomerRepository) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer with ID %d: %w", id, ErrNotFound)
	}
	customer.PhoneNumber = cloneString(customer.PhoneNumber)
	return &customer, nil
}

// GetByEmail returns the customer owning email.
func (r *MemoryCustomerRepository) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.customers {
		if c.Email == email {
			c.PhoneNumber = cloneString(c.PhoneNumber)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer with email %s: %w", email, ErrNotFound)
}

func (r *MemoryCustomerRepository) emailTakenLocked(email string, except uint) bool {
	for id, c := range r.store.customers {
		if id != except && c.Email == email {
			return true
		}
	}
	return false
}

// Create adds a customer with the next sequential ID.
func (r *MemoryCustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailTakenLocked(customer.Email, 0) {
		return fmt.Errorf("failed to create customer: email %s: %w", customer.Email, ErrDuplicateKey)
	}

	r.store.nextCustomerID++
	customer.ID = r.store.nextCustomerID
	customer.CreatedAt = now()
	customer.UpdatedAt = customer.CreatedAt

	stored := *customer
	stored.PhoneNumber = cloneString(customer.PhoneNumber)
	r.store.customers[customer.ID] = stored
	return nil
}

// Update modifies an existing customer.
func (r *MemoryCustomerRepository) Update(_ context.Context, customer *models.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.customers[customer.ID]
	if !ok {
		return fmt.Errorf("customer with ID %d not found for update: %w", customer.ID, ErrNotFound)
	}
	if r.emailTakenLocked(customer.Email, customer.ID) {
		return fmt.Errorf("failed to update customer: email %s: %w", customer.Email, ErrDuplicateKey)
	}

	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = nextUpdatedAt(existing.UpdatedAt)

	stored := *customer
	stored.PhoneNumber = cloneString(customer.PhoneNumber)
	r.store.customers[customer.ID] = stored
	return nil
}

// Delete removes a customer by ID.
func (r *MemoryCustomerRepository) Delete(_ context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return false, nil
	}
	delete(r.store.customers, id)
	return true, nil
}
