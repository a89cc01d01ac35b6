package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/dto"
	"storefront/internal/metrics"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/internal/testutil"
	"storefront/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds the full HTTP stack over a private in-memory sqlite store.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db := testutil.NewSQLite(t)
	log := logger.Discard()

	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	return server.New(server.Deps{
		Products:   services.NewProductService(productRepo, categoryRepo, nil, log),
		Categories: services.NewCategoryService(categoryRepo, nil, log),
		Customers:  services.NewCustomerService(customerRepo, nil, log),
		Validator:  dto.NewValidator(),
		Metrics:    metrics.New(),
		Store:      sqlDB,
		Log:        log,
	})
}

// do sends a request with an optional JSON body and returns the response.
func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			jsonBody, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(jsonBody)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createCategory(t *testing.T, app *fiber.App, name string) dto.CategoryDto {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/categories", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.CategoryDto](t, resp)
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)
	category := createCategory(t, app, "Gadgets")

	// --- Create ---
	resp := do(t, app, http.MethodPost, "/api/products", map[string]any{
		"name":           "Widget",
		"price":          9.99,
		"stock_quantity": 5,
		"category_id":    category.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]any](t, resp)
	id := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "/api/products/"+id, resp.Header.Get("Location"))
	assert.Equal(t, 9.99, created["price"])
	assert.Equal(t, float64(5), created["stock_quantity"])
	assert.NotEmpty(t, created["created_at"])
	assert.NotContains(t, created, "updated_at")

	// --- Get returns the identical representation ---
	resp = do(t, app, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decodeBody[map[string]any](t, resp))

	// --- List ---
	resp = do(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]dto.ProductDto](t, resp), 1)

	// --- Update ---
	resp = do(t, app, http.MethodPut, "/api/products/"+id, map[string]any{
		"name":           "Widget Pro",
		"description":    "Now with more widget",
		"price":          "12.50",
		"stock_quantity": 3,
		"category_id":    category.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[dto.ProductDto](t, resp)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.Equal(t, "12.5", updated.Price.String())
	require.NotNil(t, updated.UpdatedAt)

	// --- Delete ---
	resp = do(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errResp := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "Product with ID "+id+" not found", errResp.Message)

	resp = do(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductValidation(t *testing.T) {
	app := setupApp(t)
	category := createCategory(t, app, "Gadgets")

	tests := []struct {
		name    string
		body    any
		details string
	}{
		{
			name:    "short name",
			body:    map[string]any{"name": "ab", "price": 1, "category_id": category.ID},
			details: "name must be at least 3 characters",
		},
		{
			name:    "negative price",
			body:    map[string]any{"name": "Widget", "price": -1, "category_id": category.ID},
			details: "price must be a non-negative amount up to 99999999.99 with at most 2 decimal places",
		},
		{
			name:    "three decimals",
			body:    map[string]any{"name": "Widget", "price": 1.234, "category_id": category.ID},
			details: "price must be a non-negative amount up to 99999999.99 with at most 2 decimal places",
		},
		{
			name:    "price exceeds column precision",
			body:    `{"name":"Widget","price":12345678901234567.89,"category_id":"` + category.ID + `"}`,
			details: "price must be a non-negative amount up to 99999999.99 with at most 2 decimal places",
		},
		{
			name:    "negative stock",
			body:    map[string]any{"name": "Widget", "price": 1, "stock_quantity": -1, "category_id": category.ID},
			details: "stock_quantity must be greater than or equal to 0",
		},
		{
			name:    "missing category",
			body:    map[string]any{"name": "Widget", "price": 1},
			details: "category_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, http.MethodPost, "/api/products", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			errResp := decodeBody[dto.ErrorResponse](t, resp)
			assert.Equal(t, "Validation failed", errResp.Message)
			assert.Contains(t, errResp.Details, tt.details)
		})
	}

	resp := do(t, app, http.MethodGet, "/api/products", nil)
	assert.Empty(t, decodeBody[[]dto.ProductDto](t, resp))
}

func TestProductUnknownCategory(t *testing.T) {
	app := setupApp(t)

	resp := do(t, app, http.MethodPost, "/api/products", map[string]any{
		"name":        "Widget",
		"price":       1,
		"category_id": "0b7d6f5e-1111-4a2b-8c3d-9e8f7a6b5c4d",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "the referenced category does not exist", decodeBody[dto.ErrorResponse](t, resp).Message)
}

func TestMalformedBody(t *testing.T) {
	app := setupApp(t)

	resp := do(t, app, http.MethodPost, "/api/categories", `{"name":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decodeBody[dto.ErrorResponse](t, resp).Message)
}

func TestCategoryDeleteRestricted(t *testing.T) {
	app := setupApp(t)
	category := createCategory(t, app, "Tools")
	assert.Nil(t, category.UpdatedAt)

	resp := do(t, app, http.MethodPost, "/api/products", map[string]any{
		"name":        "Hammer",
		"price":       19.5,
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decodeBody[dto.ProductDto](t, resp)

	resp = do(t, app, http.MethodDelete, "/api/categories/"+category.ID, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "the category still has products", decodeBody[dto.ErrorResponse](t, resp).Message)

	resp = do(t, app, http.MethodGet, "/api/categories/"+category.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/products/"+product.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/categories/"+category.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/api/categories/"+category.ID, map[string]any{"name": "Gone"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomerEndpoints(t *testing.T) {
	app := setupApp(t)
	ada := map[string]any{
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"email":        "a@x.com",
		"phone_number": "+44 20 7946 0958",
	}

	resp := do(t, app, http.MethodPost, "/api/customers", ada)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[dto.CustomerDto](t, resp)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "/api/customers/1", resp.Header.Get("Location"))
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	// Duplicate email is a business-rule rejection and creates nothing.
	resp = do(t, app, http.MethodPost, "/api/customers", ada)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "a customer with this email already exists", decodeBody[dto.ErrorResponse](t, resp).Message)

	resp = do(t, app, http.MethodGet, "/api/customers", nil)
	assert.Len(t, decodeBody[[]dto.CustomerDto](t, resp), 1)

	resp = do(t, app, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Eve", "last_name": "Bad", "email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody[dto.ErrorResponse](t, resp).Details, "email must be a valid email address")

	ada["last_name"] = "King"
	resp = do(t, app, http.MethodPut, "/api/customers/1", ada)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[dto.CustomerDto](t, resp)
	assert.Equal(t, "King", updated.LastName)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	resp = do(t, app, http.MethodGet, "/api/customers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/api/customers/999", ada)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/customers/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/customers/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	app := setupApp(t)

	resp := do(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decodeBody[map[string]any](t, resp)["status"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	do(t, app, http.MethodGet, "/api/categories", nil)

	resp = do(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_http_requests_total{method="GET",route="/api/categories/",status="200"} 1`)
}
