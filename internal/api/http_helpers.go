package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/hous-app/hous-server/internal/services"
)

// envelope is the fixed response shape every endpoint returns.
type envelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func apiSuccess(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{
		Status:  status,
		Success: true,
		Message: message,
		Data:    data,
	})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{
		Status:  status,
		Success: false,
		Message: message,
	})
}

// respondServiceError maps a service error to the envelope. Anything outside
// the fixed taxonomy is logged and flattened to a generic 500; no internal
// detail crosses the boundary.
func respondServiceError(c *fiber.Ctx, err error) error {
	var serviceErr *services.Error
	if errors.As(err, &serviceErr) {
		return apiError(c, serviceErr.Status, serviceErr.Message)
	}
	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	return apiError(c, fiber.StatusInternalServerError, services.ErrInternal.Message)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := c.ParamsInt(name)
	if err != nil || value <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return uint(value), nil
}
