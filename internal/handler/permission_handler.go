package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/middleware"
	"arsip-dokumen/internal/service"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

func (h *PermissionHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var status *domain.PermissionRequestStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s := domain.PermissionRequestStatus(strings.ToUpper(raw))
		switch s {
		case domain.RequestPending, domain.RequestApproved, domain.RequestRejected:
			status = &s
		default:
			return apperror.BadRequest("INVALID_PAYLOAD", "Unknown request status filter")
		}
	}

	result, err := h.permissionService.List(c.Context(), status, params)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(result, ""))
}

func (h *PermissionHandler) Review(c *fiber.Ctx) error {
	admin := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "requestId")
	if err != nil {
		return err
	}

	var input domain.ReviewPermissionRequestInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.BadRequest("INVALID_PAYLOAD", "Invalid request body")
	}
	if input.Note != nil && len(*input.Note) > 1000 {
		return apperror.BadRequest("INVALID_PAYLOAD", "Note too long")
	}

	decision := domain.ReviewDecision(strings.ToUpper(strings.TrimSpace(input.Decision)))

	req, err := h.permissionService.Review(c.Context(), id, admin, decision, input.Note)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(req, "Request reviewed"))
}
