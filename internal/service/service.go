package service

import (
	"arsip-dokumen/internal/config"
	"arsip-dokumen/internal/repository"
	"arsip-dokumen/internal/storage"
)

type Services struct {
	Auth         AuthService
	Document     DocumentService
	Permission   PermissionService
	Notification NotificationService
	Email        EmailService
}

func NewServices(repos *repository.Repositories, txManager repository.TxManager, sessions repository.SessionStore, backend storage.Backend, cfg *config.Config) *Services {
	email := NewEmailService(cfg)

	return &Services{
		Auth:         NewAuthService(repos.User, sessions, cfg),
		Document:     NewDocumentService(repos, txManager, backend, email),
		Permission:   NewPermissionService(repos, txManager, backend, email),
		Notification: NewNotificationService(repos.Notification),
		Email:        email,
	}
}
