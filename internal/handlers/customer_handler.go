package handlers

import (
	"log/slog"
	"strconv"

	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *dto.Validator
	responder
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService, validate *dto.Validator, log *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:   service,
		validate:  validate,
		responder: responder{resource: "Customer", log: log},
	}
}

// RegisterRoutes registers the customer routes with the Fiber router.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/:id", h.HandleGetCustomerByID)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

// HandleGetCustomers retrieves all customers.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers(c.UserContext())
	if err != nil {
		return h.fail(c, "", err)
	}
	return c.JSON(customers)
}

// HandleGetCustomerByID retrieves a single customer by its ID.
func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return h.fail(c, c.Params("id"), err)
	}
	customer, err := h.service.GetCustomerByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, c.Params("id"), err)
	}
	return c.JSON(customer)
}

// HandleCreateCustomer registers a new customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := decode(c, h.validate, &req); err != nil {
		return h.fail(c, "", err)
	}

	customer, err := h.service.CreateCustomer(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "", err)
	}

	c.Location("/api/customers/" + strconv.FormatUint(uint64(customer.ID), 10))
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer replaces an existing customer.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return h.fail(c, c.Params("id"), err)
	}
	var req dto.CreateCustomerRequest
	if err := decode(c, h.validate, &req); err != nil {
		return h.fail(c, c.Params("id"), err)
	}

	customer, err := h.service.UpdateCustomer(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, c.Params("id"), err)
	}
	return c.JSON(customer)
}

// HandleDeleteCustomer deletes a customer by its ID.
func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return h.fail(c, c.Params("id"), err)
	}
	deleted, err := h.service.DeleteCustomer(c.UserContext(), id)
	if err != nil {
		return h.fail(c, c.Params("id"), err)
	}
	if !deleted {
		return h.fail(c, c.Params("id"), services.ErrNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func customerID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, &badRequestError{message: "Invalid customer ID", details: raw + " is not a positive integer"}
	}
	return uint(id), nil
}
