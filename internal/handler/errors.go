package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/funders-backend/internal/models"
	"go.uber.org/zap"
)

// ErrorHandler renders framework errors (unknown routes, panics, body limits)
// in the same {"error": "..."} shape as the handlers.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			logger.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(models.ErrorResponse(msg))
	}
}
