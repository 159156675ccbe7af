package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/repository"
	"arsip-dokumen/internal/storage"
)

type PermissionService interface {
	List(ctx context.Context, status *domain.PermissionRequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.PermissionRequest], error)

	// Review applies an APPROVE or REJECT decision to a pending request.
	// Document state, request state and the notification row change in one
	// transaction; file deletions are deferred until after a successful
	// commit, and a file promoted during an approval is removed again if
	// the transaction fails.
	Review(ctx context.Context, requestID uuid.UUID, admin *domain.User, decision domain.ReviewDecision, note *string) (*domain.PermissionRequest, error)
}

type permissionService struct {
	permissionRepo repository.PermissionRequestRepository
	documentRepo   repository.DocumentRepository
	notifRepo      repository.NotificationRepository
	txManager      repository.TxManager
	backend        storage.Backend
	email          EmailService
}

func NewPermissionService(repos *repository.Repositories, txManager repository.TxManager, backend storage.Backend, email EmailService) PermissionService {
	return &permissionService{
		permissionRepo: repos.PermissionRequest,
		documentRepo:   repos.Document,
		notifRepo:      repos.Notification,
		txManager:      txManager,
		backend:        backend,
		email:          email,
	}
}

func (s *permissionService) List(ctx context.Context, status *domain.PermissionRequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.PermissionRequest], error) {
	requests, total, err := s.permissionRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.PermissionRequest]{}, err
	}
	params.Validate()
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *permissionService) Review(ctx context.Context, requestID uuid.UUID, admin *domain.User, decision domain.ReviewDecision, note *string) (*domain.PermissionRequest, error) {
	var (
		req *domain.PermissionRequest

		// Artifacts to remove only once the transaction definitely
		// committed (old live files, staged files).
		deleteAfterCommit []string

		// Artifacts created during this review (the promoted file) to
		// remove if the transaction does not commit.
		rollbackOnError []string
	)

	err := s.txManager.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		req, err = s.permissionRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return apperror.NotFound("REQUEST_NOT_FOUND", "Permission request not found")
		}

		if req.Status != domain.RequestPending {
			return apperror.Conflict("REQUEST_ALREADY_REVIEWED", "Request already reviewed")
		}

		// Lock the document too; every mutation below happens under both
		// row locks.
		var doc *domain.Document
		if req.DocumentID != nil {
			doc, err = s.documentRepo.GetByIDForUpdate(ctx, tx, *req.DocumentID)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		req.ReviewedBy = &admin.ID
		req.ReviewedAt = &now
		req.Note = note

		switch decision {
		case domain.DecisionReject:
			req.Status = domain.RequestRejected

			if doc != nil && doc.LockedByRequestID != nil && *doc.LockedByRequestID == req.ID {
				doc.Status = domain.DocumentActive
				doc.LockedByRequestID = nil
				if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
					return err
				}
			}

			if req.Action == domain.ActionReplace {
				if payload, err := req.ReplacePayload(); err == nil && payload.PendingFileURL != "" {
					deleteAfterCommit = append(deleteAfterCommit, payload.PendingFileURL)
				}
			}

		case domain.DecisionApprove:
			req.Status = domain.RequestApproved

			switch req.Action {
			case domain.ActionReplace:
				if doc == nil {
					return apperror.NotFound("DOCUMENT_NOT_FOUND", "Document not found")
				}
				if doc.LockedByRequestID == nil || *doc.LockedByRequestID != req.ID {
					return apperror.Conflict("DOC_LOCK_MISMATCH", "Document lock mismatch")
				}

				payload, err := req.ReplacePayload()
				if err != nil || payload.PendingFileURL == "" {
					return apperror.BadRequest("INVALID_PAYLOAD", "Missing replacement file")
				}

				newRef, err := s.backend.Promote(ctx, payload.PendingFileURL)
				if err != nil {
					return err
				}
				rollbackOnError = append(rollbackOnError, newRef)
				deleteAfterCommit = append(deleteAfterCommit, doc.FileURL, payload.PendingFileURL)

				doc.FileURL = newRef
				doc.Version++
				doc.Status = domain.DocumentActive
				doc.LockedByRequestID = nil
				if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
					return err
				}

			case domain.ActionDelete:
				if doc == nil {
					return apperror.NotFound("DOCUMENT_NOT_FOUND", "Document not found")
				}

				deleteAfterCommit = append(deleteAfterCommit, doc.FileURL)
				if err := s.documentRepo.Delete(ctx, tx, doc.ID); err != nil {
					return err
				}
				// The request outlives the document as review history.
				req.DocumentID = nil
			}

		default:
			return apperror.BadRequest("INVALID_DECISION", "Invalid review decision")
		}

		if err := s.permissionRepo.UpdateReview(ctx, tx, req); err != nil {
			return err
		}

		reqID := req.ID
		notif := &domain.Notification{
			ID:              uuid.New(),
			UserID:          req.RequestedBy,
			Type:            domain.NotifPermissionResult,
			Message:         fmt.Sprintf("Request %s has been %s", req.ID, req.Status),
			RelatedEntityID: &reqID,
		}
		return s.notifRepo.Create(ctx, tx, notif)
	})
	if err != nil {
		for _, ref := range rollbackOnError {
			s.backend.DeleteIfExists(ctx, ref)
		}
		return nil, err
	}

	// Deferred deletions run only now that the transaction committed;
	// failures are logged inside the backend, never surfaced.
	for _, ref := range deleteAfterCommit {
		s.backend.DeleteIfExists(ctx, ref)
	}

	s.emailRequesterAsync(req)

	return req, nil
}

func (s *permissionService) emailRequesterAsync(req *domain.PermissionRequest) {
	go func() {
		if err := s.email.SendReviewResult(context.Background(), req.RequesterEmail, req); err != nil {
			log.Printf("failed to send review result email to %s: %v", req.RequesterEmail, err)
		}
	}()
}
