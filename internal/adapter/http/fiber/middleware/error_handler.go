package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
)

// ErrorHandler is the Fiber global error handler. Errors that escape a
// handler are mapped to the pipeline taxonomy: upload problems become 400s,
// everything else a generic 500. Vendor detail stays in the logs, not the
// response.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		switch {
		case errors.Is(err, domain.ErrMissingFile), errors.Is(err, domain.ErrUnsupportedFormat):
			code = fiber.StatusBadRequest
		default:
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(code).JSON(fiber.Map{"error": "Something went wrong"})
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
