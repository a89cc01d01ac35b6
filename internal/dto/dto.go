// Package dto holds the request and response shapes exchanged over the HTTP
// API, the mapping from persisted models, and the validation ruleset applied
// to incoming requests.
package dto

import (
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateProductRequest is the body of POST and PUT /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=3,max=100"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price" validate:"money"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	CategoryID    string          `json:"category_id" validate:"required,uuid"`
}

// ProductDto is the API representation of a product.
type ProductDto struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    string          `json:"category_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// CreateCategoryRequest is the body of POST and PUT /api/categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// CategoryDto is the API representation of a category.
type CategoryDto struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateCustomerRequest is the body of POST and PUT /api/customers.
type CreateCustomerRequest struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20,phone"`
}

// CustomerDto is the API representation of a customer.
type CustomerDto struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FromProduct maps a persisted product to its DTO.
func FromProduct(p models.Product) ProductDto {
	return ProductDto{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.Round(2),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromProducts maps a slice of products, never returning nil.
func FromProducts(products []models.Product) []ProductDto {
	out := make([]ProductDto, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// ToModel builds a product entity from the request. ID and timestamps are
// left for the repository to assign.
func (r CreateProductRequest) ToModel() models.Product {
	return models.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price.Round(2),
		StockQuantity: r.StockQuantity,
		CategoryID:    r.CategoryID,
	}
}

// FromCategory maps a persisted category to its DTO.
func FromCategory(c models.Category) CategoryDto {
	return CategoryDto{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromCategories maps a slice of categories, never returning nil.
func FromCategories(categories []models.Category) []CategoryDto {
	out := make([]CategoryDto, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromCategory(c))
	}
	return out
}

// ToModel builds a category entity from the request.
func (r CreateCategoryRequest) ToModel() models.Category {
	return models.Category{
		Name:        r.Name,
		Description: r.Description,
	}
}

// FromCustomer maps a persisted customer to its DTO.
func FromCustomer(c models.Customer) CustomerDto {
	return CustomerDto{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromCustomers maps a slice of customers, never returning nil.
func FromCustomers(customers []models.Customer) []CustomerDto {
	out := make([]CustomerDto, 0, len(customers))
	for _, c := range customers {
		out = append(out, FromCustomer(c))
	}
	return out
}

// ToModel builds a customer entity from the request.
func (r CreateCustomerRequest) ToModel() models.Customer {
	return models.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}
