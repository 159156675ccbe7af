package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PermissionRequest struct {
	ID             uuid.UUID               `json:"id" db:"request_id"`
	DocumentID     *uuid.UUID              `json:"document_id,omitempty" db:"document_id"`
	Action         PermissionAction        `json:"action" db:"action"`
	RequestedBy    uuid.UUID               `json:"requested_by" db:"requested_by"`
	RequesterEmail string                  `json:"requester_email" db:"requester_email"`
	RequestedAt    time.Time               `json:"requested_at" db:"requested_at"`
	Status         PermissionRequestStatus `json:"status" db:"status"`
	ReviewedBy     *uuid.UUID              `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time              `json:"reviewed_at,omitempty" db:"reviewed_at"`
	Note           *string                 `json:"note,omitempty" db:"note"`
	Payload        json.RawMessage         `json:"payload,omitempty" db:"payload"`
}

type PermissionAction string

const (
	ActionReplace PermissionAction = "REPLACE"
	ActionDelete  PermissionAction = "DELETE"
)

type PermissionRequestStatus string

const (
	RequestPending  PermissionRequestStatus = "PENDING"
	RequestApproved PermissionRequestStatus = "APPROVED"
	RequestRejected PermissionRequestStatus = "REJECTED"
)

type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "APPROVE"
	DecisionReject  ReviewDecision = "REJECT"
)

// ReplacePayload is the request payload for REPLACE actions. DELETE requests
// carry no payload.
type ReplacePayload struct {
	PendingFileURL   string `json:"pending_file_url"`
	OriginalFilename string `json:"original_filename"`
}

func (r *PermissionRequest) ReplacePayload() (*ReplacePayload, error) {
	var payload ReplacePayload
	if len(r.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(r.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type ReviewPermissionRequestInput struct {
	Decision string  `json:"decision" validate:"required"`
	Note     *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}
