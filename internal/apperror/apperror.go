// Package apperror defines the error taxonomy shared by services and the
// HTTP error handler. Every domain-rule violation is represented as an
// *Error carrying the HTTP status, a stable machine-readable code and
// optional details for the caller (e.g. the current document version on a
// version conflict).
package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func NotFound(code, message string) *Error {
	return New(fiber.StatusNotFound, code, message)
}

func Forbidden(message string) *Error {
	return New(fiber.StatusForbidden, "FORBIDDEN", message)
}

func Conflict(code, message string) *Error {
	return New(fiber.StatusConflict, code, message)
}

func BadRequest(code, message string) *Error {
	return New(fiber.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(fiber.StatusUnauthorized, code, message)
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
