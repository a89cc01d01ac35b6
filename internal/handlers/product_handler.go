package handlers

import (
	"log/slog"

	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *dto.Validator
	responder
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *dto.Validator, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validate:  validate,
		responder: responder{resource: "Product", log: log},
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.fail(c, "", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := decode(c, h.validate, &req); err != nil {
		return h.fail(c, "", err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "", err)
	}

	c.Location("/api/products/" + product.ID)
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var req dto.CreateProductRequest
	if err := decode(c, h.validate, &req); err != nil {
		return h.fail(c, id, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	deleted, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return h.fail(c, id, err)
	}
	if !deleted {
		return h.fail(c, id, services.ErrNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
