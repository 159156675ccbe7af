package handler

import (
	"github.com/gofiber/fiber/v2"

	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Document     *DocumentHandler
	Permission   *PermissionHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Document:     NewDocumentHandler(services.Document),
		Permission:   NewPermissionHandler(services.Permission),
		Notification: NewNotificationHandler(services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 10); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
