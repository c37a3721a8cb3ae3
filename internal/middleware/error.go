package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hero-forge/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler turns domain errors into their JSON shape. Anything that is
// neither a *domain.Error nor a *fiber.Error is an infrastructure failure
// and surfaces as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := string(domain.ErrInternal)

	var domainErr *domain.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &domainErr):
		code = domainErr.StatusCode()
		message = domainErr.Message
		errorCode = string(domainErr.Kind)
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		switch code {
		case fiber.StatusBadRequest:
			errorCode = string(domain.ErrValidation)
		case fiber.StatusUnauthorized:
			errorCode = string(domain.ErrUnauthorized)
		case fiber.StatusForbidden:
			errorCode = string(domain.ErrForbidden)
		case fiber.StatusNotFound:
			errorCode = string(domain.ErrNotFound)
		case fiber.StatusConflict:
			errorCode = string(domain.ErrConflict)
		}
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}
