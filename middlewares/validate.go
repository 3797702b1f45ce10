package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the request body into dst and validates its tags.
// Every billing DTO (generate, customize, payments, orders) comes through here;
// parse errors map to 400 and validator.ValidationErrors to 422 in the central
// error handler.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// For slice bodies (batch product create), call ValidateStruct per element
	// in the controller instead.
	return validate.Struct(dst)
}

// ValidateStruct validates a single struct value with the shared instance.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
