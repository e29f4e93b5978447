package serverutils

import (
	"errors"

	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps an error kind to the HTTP status the notes API answers with.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindTransport:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler renders every error leaving a handler as {"code","message"}.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := string(apperror.KindInternal)
			switch fe.Code {
			case fiber.StatusNotFound:
				code = string(apperror.KindNotFound)
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = string(apperror.KindValidation)
			case fiber.StatusUnauthorized:
				code = "UNAUTHORIZED"
			}
			return ctx.Status(fe.Code).JSON(ErrorResponse(code, fe.Message))
		}

		kind := apperror.KindOf(err)
		status := StatusOf(kind)
		message := apperror.MessageOf(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]any{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			if kind == apperror.KindInternal {
				message = "internal server error"
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(string(kind), message))
	}
}
