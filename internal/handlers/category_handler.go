package handlers

import (
	"log/slog"

	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *dto.Validator
	responder
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, validate *dto.Validator, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:   service,
		validate:  validate,
		responder: responder{resource: "Category", log: log},
	}
}

// RegisterRoutes registers the category routes with the Fiber router.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetCategories retrieves all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return h.fail(c, "", err)
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id := c.Params("id")
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := decode(c, h.validate, &req); err != nil {
		return h.fail(c, "", err)
	}

	category, err := h.service.CreateCategory(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "", err)
	}

	c.Location("/api/categories/" + category.ID)
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory replaces an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	var req dto.CreateCategoryRequest
	if err := decode(c, h.validate, &req); err != nil {
		return h.fail(c, id, err)
	}

	category, err := h.service.UpdateCategory(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category that has no products.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	deleted, err := h.service.DeleteCategory(c.UserContext(), id)
	if err != nil {
		return h.fail(c, id, err)
	}
	if !deleted {
		return h.fail(c, id, services.ErrNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
