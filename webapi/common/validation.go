package common

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate parses the request body into T and runs struct
// validation. On failure the error response has already been written;
// the caller only needs to return the error.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	input := new(T)
	if err := c.BodyParser(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return input, nil
}
