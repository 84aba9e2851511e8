package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pdf-chatbot-be/internal/pkg/logger"
)

type Response[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Message: message,
		Data:    data,
	}
}

// ErrorHandlerMiddleware turns AppErrors bubbling out of handlers into JSON
// responses. Server-side kinds are logged with their cause; clients only see
// the kind and message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Status >= fiber.StatusInternalServerError {
				log.Error("http", appErr.Message, map[string]interface{}{
					"kind":  string(appErr.Kind),
					"path":  ctx.Path(),
					"cause": errString(appErr.Err),
				})
			}
			return ctx.Status(appErr.Status).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    appErr.Kind,
					"message": appErr.Message,
				},
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    KindBadRequest,
					"message": fiberErr.Message,
				},
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"cause": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"kind":    KindInternal,
				"message": "internal server error",
			},
		})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
