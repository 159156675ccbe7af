package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID              uuid.UUID        `json:"id" db:"notification_id"`
	UserID          uuid.UUID        `json:"user_id" db:"user_id"`
	Type            NotificationType `json:"type" db:"type"`
	Message         string           `json:"message" db:"message"`
	RelatedEntityID *uuid.UUID       `json:"related_entity_id,omitempty" db:"related_entity_id"`
	IsRead          bool             `json:"is_read" db:"is_read"`
	ReadAt          *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifPermissionRequest NotificationType = "PERMISSION_REQUEST"
	NotifPermissionResult  NotificationType = "PERMISSION_RESULT"
)
