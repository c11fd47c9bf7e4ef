package lib

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// APIError is the application error type. Message is what the client
// sees; Err is the internal cause and is only ever logged.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{Status: fiber.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{Status: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *APIError {
	return &APIError{Status: fiber.StatusNotFound, Message: message}
}

// Internal wraps an unexpected error. The cause is logged by the error
// handler; the client only receives a generic message.
func Internal(err error) *APIError {
	return &APIError{Status: fiber.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// ErrorHandler is the app-wide Fiber error handler. Every error becomes
// a JSON body with an "error" key and the mapped status code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Err != nil {
			log.Printf("%s %s: %v", c.Method(), c.Path(), apiErr.Err)
		}
		return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("%s %s: unhandled error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// StatusOf reports the HTTP status an error will be mapped to.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
