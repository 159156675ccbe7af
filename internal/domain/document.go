package domain

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID                uuid.UUID      `json:"id" db:"document_id"`
	Title             string         `json:"title" db:"title"`
	Description       string         `json:"description" db:"description"`
	DocumentType      string         `json:"document_type" db:"document_type"`
	FileURL           string         `json:"file_url" db:"file_url"`
	Version           int            `json:"version" db:"version"`
	Status            DocumentStatus `json:"status" db:"status"`
	CreatedBy         uuid.UUID      `json:"created_by" db:"created_by"`
	LockedByRequestID *uuid.UUID     `json:"locked_by_request_id,omitempty" db:"locked_by_request_id"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

type DocumentStatus string

const (
	DocumentActive         DocumentStatus = "ACTIVE"
	DocumentPendingReplace DocumentStatus = "PENDING_REPLACE"
	DocumentPendingDelete  DocumentStatus = "PENDING_DELETE"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentActive, DocumentPendingReplace, DocumentPendingDelete:
		return true
	default:
		return false
	}
}

type UploadDocumentInput struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description" validate:"required,max=5000"`
	DocumentType string `json:"document_type" validate:"required,max=100"`
}

type DocumentFilter struct {
	Search       *string
	Status       *DocumentStatus
	DocumentType *string
}

type ReplaceRequestInput struct {
	ExpectedVersion int     `json:"expected_version" validate:"required,gt=0"`
	Note            *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type DeleteRequestInput struct {
	ExpectedVersion int     `json:"expected_version" validate:"required,gt=0"`
	Note            *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}
