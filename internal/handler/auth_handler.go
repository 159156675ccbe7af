package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.BadRequest("INVALID_PAYLOAD", "Invalid request body")
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if input.Email == "" || input.FullName == "" {
		return apperror.BadRequest("INVALID_PAYLOAD", "Email and full name are required")
	}
	if len(input.Password) < 8 {
		return apperror.BadRequest("INVALID_PAYLOAD", "Password must be at least 8 characters")
	}

	user, tokens, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(domain.NewSuccessResponse(fiber.Map{
		"user":   user,
		"tokens": tokens,
	}, "User registered"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.BadRequest("INVALID_PAYLOAD", "Invalid request body")
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(fiber.Map{
		"user":   user,
		"tokens": tokens,
	}, "Login successful"))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("INVALID_PAYLOAD", "Invalid request body")
	}
	if req.RefreshToken == "" {
		return apperror.BadRequest("INVALID_PAYLOAD", "Refresh token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(tokens, "Token refreshed"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("INVALID_PAYLOAD", "Invalid request body")
	}
	if req.RefreshToken == "" {
		return apperror.BadRequest("INVALID_PAYLOAD", "Refresh token is required")
	}

	if err := h.authService.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(nil, "Logged out"))
}
