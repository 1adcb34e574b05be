package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AppError is a domain error carrying the HTTP status it maps to.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed input.
func NewValidationError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

// NewNotFoundError reports a missing referenced record.
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

// NewConflictError reports a request whose state is already satisfied.
// The API reports these as 400 rather than 409.
func NewConflictError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated but disallowed request.
func NewForbiddenError(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

// NewInternalError wraps an unexpected failure. The wrapped error is kept for
// logging but never serialized to the client.
func NewInternalError(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "Unexpected error. Try again later.", Err: err}
}

// NewUnexpectedError reports an invariant violation, such as a side table that
// every user is assumed to have turning up missing.
func NewUnexpectedError(message string) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message}
}

// StatusFromError extracts the HTTP status an error maps to.
func StatusFromError(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes the standard {success:false, message} envelope using
// the status carried by the error kind.
func RespondWithError(c *fiber.Ctx, err error) error {
	message := err.Error()
	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return c.Status(StatusFromError(err)).JSON(ErrorResponse{
		Success: false,
		Message: message,
	})
}
