package utils

import (
	"github.com/conduitapp/conduit/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ValidationErrorResponse sends a 422 with the per-field message map.
func ValidationErrorResponse(c *fiber.Ctx, errs *types.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(errs)
}

// ErrorsResponseStruct defines the schema for validation error responses
type ErrorsResponseStruct struct {
	Errors map[string]string `json:"errors"`
}
