package utils

import (
	"errors"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, fiber.Map{"status": "success", "data": data})
}

// Created sends a JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, fiber.Map{"status": "success", "data": data})
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(err error) int {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return fiber.StatusInternalServerError
	}
	switch de.Code {
	case apperrors.ErrWalletNotFound.Code,
		apperrors.ErrBankNotFound.Code,
		apperrors.ErrUserNotFound.Code:
		return fiber.StatusNotFound
	case apperrors.ErrWalletExists.Code,
		apperrors.ErrBankExists.Code,
		apperrors.ErrUserExists.Code:
		return fiber.StatusConflict
	case apperrors.ErrInvalidCredentials.Code:
		return fiber.StatusUnauthorized
	case apperrors.ErrInternal.Code:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// Error writes err as a JSON error body. Domain errors keep their code and
// reason; anything else is reported as an opaque internal error.
func Error(c *fiber.Ctx, err error) error {
	status := StatusFor(err)

	var de *apperrors.DomainError
	if !errors.As(err, &de) || status == fiber.StatusInternalServerError {
		return Respond(c, fiber.StatusInternalServerError, fiber.Map{
			"error": apperrors.ErrInternal.Message,
			"code":  apperrors.ErrInternal.Code,
		})
	}

	body := fiber.Map{"error": de.Message, "code": de.Code}
	if de.Reason != "" {
		body["reason"] = de.Reason
	}
	return Respond(c, status, body)
}
