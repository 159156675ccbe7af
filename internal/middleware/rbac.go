package middleware

import (
	"github.com/gofiber/fiber/v2"

	"arsip-dokumen/internal/apperror"
)

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return apperror.Unauthorized("USER_NOT_FOUND", "User not authenticated")
		}

		if !user.IsAdmin() {
			return apperror.Forbidden("Not enough permissions")
		}

		return c.Next()
	}
}
