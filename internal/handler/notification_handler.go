package handler

import (
	"github.com/gofiber/fiber/v2"

	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/middleware"
	"arsip-dokumen/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.notificationService.ListForUser(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(result, ""))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(fiber.Map{"unread": count}, ""))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "notificationId")
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkRead(c.Context(), id, userID); err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(nil, "Notification marked as read"))
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.notificationService.MarkAllRead(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(fiber.Map{"updated": updated}, "Notifications marked as read"))
}
