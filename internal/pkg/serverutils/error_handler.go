package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stayops-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts downstream errors into the standard
// response envelope. fiber errors keep their status; anything else becomes
// an opaque 500 so internal details never leak to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
