package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-docgen-be/internal/service"
)

// mapServiceError translates domain errors into HTTP status codes. Anything
// unmapped bubbles up as a 500 through the app error handler.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoContent),
		errors.Is(err, service.ErrNoTemplate),
		errors.Is(err, service.ErrBadFormat),
		errors.Is(err, service.ErrNoFiles):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
