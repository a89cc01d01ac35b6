package database

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name, description, price string
	stock                    int
}

var seedCatalog = []struct {
	name, description string
	products          []seedProduct
}{
	{
		name:        "Computers",
		description: "Laptops and desktop machines",
		products: []seedProduct{
			{"Laptop", "High performance laptop", "1200.00", 10},
		},
	},
	{
		name:        "Accessories",
		description: "Peripherals for everyday work",
		products: []seedProduct{
			{"Keyboard", "Mechanical keyboard", "75.00", 25},
			{"Mouse", "Ergonomic wireless mouse", "25.00", 50},
		},
	},
}

// Seed populates an empty catalog with a few categories and products. It
// does nothing when at least one product already exists and reports whether
// rows were inserted.
func Seed(ctx context.Context, categories repositories.CategoryRepository, products repositories.ProductRepository, log *slog.Logger) (bool, error) {
	existing, err := products.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: count products: %w", err)
	}
	if len(existing) > 0 {
		log.Info("catalog already populated, skipping seed", "products", len(existing))
		return false, nil
	}

	for _, c := range seedCatalog {
		description := c.description
		category := models.Category{Name: c.name, Description: &description}
		if err := categories.Create(ctx, &category); err != nil {
			return false, fmt.Errorf("seed: category %s: %w", c.name, err)
		}
		log.Info("seeded category", "name", category.Name, "category_id", category.ID)

		for _, p := range c.products {
			description := p.description
			product := models.Product{
				Name:          p.name,
				Description:   &description,
				Price:         decimal.RequireFromString(p.price),
				StockQuantity: p.stock,
				CategoryID:    category.ID,
			}
			if err := products.Create(ctx, &product); err != nil {
				return false, fmt.Errorf("seed: product %s: %w", p.name, err)
			}
			log.Info("seeded product", "name", product.Name, "product_id", product.ID)
		}
	}
	return true, nil
}
