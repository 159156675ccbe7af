package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"arsip-dokumen/internal/apperror"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// ErrorHandler renders every error as the
// {success:false, error:{code,message,details}} envelope. Unknown errors
// become 500 INTERNAL_ERROR; their cause is logged, never leaked.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperror.As(err); ok {
		return c.Status(appErr.Status).JSON(errorEnvelope{
			Success: false,
			Error: errorBody{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
	}

	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(errorEnvelope{
			Success: false,
			Error: errorBody{
				Code:    codeForStatus(e.Code),
				Message: e.Message,
			},
		})
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)

	return c.Status(fiber.StatusInternalServerError).JSON(errorEnvelope{
		Success: false,
		Error: errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
		},
	})
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		return "HTTP_ERROR"
	}
}
