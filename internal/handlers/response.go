package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "hrportal/recruiting-api/internal/errors"
)

func statusFor(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.ErrTypeNotFound:
		return fiber.StatusNotFound
	case apperrors.ErrTypeInvalidInput:
		return fiber.StatusBadRequest
	case apperrors.ErrTypeModelCall:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Only the domain message is
// exposed; the wrapped cause goes to the log.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	errType := apperrors.TypeOf(err)
	status := statusFor(errType)

	message := "internal server error"
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		message = de.Message
	}

	if status >= fiber.StatusInternalServerError {
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("type", string(errType)),
			zap.Error(err),
		}
		if de != nil && len(de.Stack) > 0 {
			fields = append(fields, zap.ByteString("stack", de.Stack))
		}
		log.Error("request failed", fields...)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func parseIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("Invalid "+label+" ID format", err)
	}
	return id, nil
}
