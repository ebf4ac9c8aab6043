package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/inkpost/inkpost/internal/settings"
)

// ErrorItem is one entry of an error response.
type ErrorItem struct {
	Message string `json:"message"`
	Type    string `json:"errorType"`
}

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// Status maps an error to its http status and error type.
func Status(err error) (int, string) {
	var (
		fiberErr      *fiber.Error
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.Is(err, settings.ErrNotFound):
		return fiber.StatusNotFound, "NotFoundError"
	case errors.Is(err, settings.ErrNoPermission):
		return fiber.StatusForbidden, "NoPermissionError"
	case errors.Is(err, settings.ErrValidation):
		return fiber.StatusUnprocessableEntity, "ValidationError"
	case errors.Is(err, settings.ErrBadRequest), errors.As(err, &validationErr):
		return fiber.StatusBadRequest, "BadRequestError"
	case errors.As(err, &fiberErr):
		switch {
		case fiberErr.Code == fiber.StatusUnauthorized:
			return fiberErr.Code, "UnauthorizedError"
		case fiberErr.Code == fiber.StatusNotFound:
			return fiberErr.Code, "NotFoundError"
		case fiberErr.Code < fiber.StatusInternalServerError:
			return fiberErr.Code, "BadRequestError"
		default:
			return fiberErr.Code, "InternalServerError"
		}
	default:
		return fiber.StatusInternalServerError, "InternalServerError"
	}
}

// SendError writes err as json error response.
func SendError(c *fiber.Ctx, err error) error {
	status, errorType := Status(err)

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

		message = "internal server error"
	}

	return c.Status(status).JSON(ErrorResponse{
		Errors: []ErrorItem{{Message: message, Type: errorType}},
	})
}

// ErrorHandler is the fiber error handler of the application.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return SendError(c, err)
}
