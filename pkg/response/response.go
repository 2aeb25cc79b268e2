package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// MsgInternal is the only message a caller sees for unexpected faults
const MsgInternal = "Internal server error"

type ErrorResponse struct {
	Error string `json:"error"`
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

func InternalError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, MsgInternal)
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

// ErrorHandler renders errors that escape a handler, including recovered panics.
// Fiber errors keep their status and message; anything else is an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return InternalError(c)
}
