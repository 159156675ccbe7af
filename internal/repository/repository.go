package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User              UserRepository
	Document          DocumentRepository
	PermissionRequest PermissionRequestRepository
	Notification      NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:              NewUserRepository(db),
		Document:          NewDocumentRepository(db),
		PermissionRequest: NewPermissionRequestRepository(db),
		Notification:      NewNotificationRepository(db),
	}
}
