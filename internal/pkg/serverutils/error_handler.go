package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts errors escaping the handlers into the JSON
// error contract. Known AppErrors keep their status and message; anything else
// becomes a generic 500 so internals never leak to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		requestId := uuid.NewString()

		if appErr, ok := apperror.As(err); ok {
			if appErr.Code >= 500 {
				log.Error("http", "request failed", map[string]interface{}{
					"request_id": requestId,
					"path":       ctx.Path(),
					"error":      appErr.Error(),
				})
			} else {
				log.Warn("http", "request rejected", map[string]interface{}{
					"request_id": requestId,
					"path":       ctx.Path(),
					"status":     appErr.Code,
					"error":      appErr.Message,
				})
			}
			return ctx.Status(appErr.Code).JSON(fiber.Map{
				"error": appErr.Message,
			})
		}

		// Fiber's own errors (bad body parse, route-level failures)
		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"request_id": requestId,
			"path":       ctx.Path(),
			"error":      err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred while processing your request. Please try again.",
		})
	}
}
