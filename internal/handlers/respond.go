// Package handlers exposes the product, category and customer services over
// HTTP and translates service outcomes into status codes.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UnexpectedErrorMessage is the only message a client sees for a 500.
const UnexpectedErrorMessage = "An unexpected error occurred"

// badRequestError is a malformed request that never reached validation.
type badRequestError struct {
	message string
	details string
}

func (e *badRequestError) Error() string { return e.message + ": " + e.details }

// responder writes error bodies for one resource.
type responder struct {
	resource string
	log      *slog.Logger
}

// decode parses the JSON body into req and validates it.
func decode(c *fiber.Ctx, v *dto.Validator, req any) error {
	if err := c.BodyParser(req); err != nil {
		return &badRequestError{message: "Invalid request body", details: err.Error()}
	}
	return v.Struct(req)
}

// fail maps err onto a status code and writes the error body.
func (r responder) fail(c *fiber.Ctx, id string, err error) error {
	var validationErr *dto.ValidationError
	var badRequest *badRequestError
	var rejected *services.RejectedError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Validation failed",
			Details: validationErr.Details(),
		})
	case errors.As(err, &badRequest):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: badRequest.message,
			Details: badRequest.details,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("%s with ID %s not found", r.resource, id),
		})
	case errors.As(err, &rejected):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: rejected.Reason,
		})
	}

	r.log.ErrorContext(c.UserContext(), "request failed",
		"request_id", middleware.RequestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"resource", r.resource,
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Message: UnexpectedErrorMessage,
	})
}
