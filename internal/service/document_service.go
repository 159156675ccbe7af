package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/repository"
	"arsip-dokumen/internal/storage"
)

// FileUpload is the transport-agnostic shape of an uploaded file.
type FileUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// DownloadResult streams a stored document file back to the caller.
type DownloadResult struct {
	Filename string
	Content  io.ReadCloser
}

type DocumentService interface {
	Upload(ctx context.Context, user *domain.User, input domain.UploadDocumentInput, file FileUpload) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Document], error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Download(ctx context.Context, user *domain.User, id uuid.UUID) (*DownloadResult, error)

	// RequestReplace stages the new file and files a PENDING replace
	// request, locking the document to it.
	RequestReplace(ctx context.Context, documentID uuid.UUID, user *domain.User, input domain.ReplaceRequestInput, file FileUpload) (*domain.PermissionRequest, *domain.Document, error)

	// RequestDelete files a PENDING delete request, locking the document
	// to it.
	RequestDelete(ctx context.Context, documentID uuid.UUID, user *domain.User, input domain.DeleteRequestInput) (*domain.PermissionRequest, *domain.Document, error)
}

type documentService struct {
	documentRepo   repository.DocumentRepository
	permissionRepo repository.PermissionRequestRepository
	notifRepo      repository.NotificationRepository
	userRepo       repository.UserRepository
	txManager      repository.TxManager
	backend        storage.Backend
	email          EmailService
}

func NewDocumentService(repos *repository.Repositories, txManager repository.TxManager, backend storage.Backend, email EmailService) DocumentService {
	return &documentService{
		documentRepo:   repos.Document,
		permissionRepo: repos.PermissionRequest,
		notifRepo:      repos.Notification,
		userRepo:       repos.User,
		txManager:      txManager,
		backend:        backend,
		email:          email,
	}
}

func (s *documentService) Upload(ctx context.Context, user *domain.User, input domain.UploadDocumentInput, file FileUpload) (*domain.Document, error) {
	if file.Filename == "" {
		return nil, apperror.BadRequest("INVALID_FILE", "A valid file is required")
	}

	storedRef, err := s.backend.Save(ctx, file.Reader, file.Size, storage.FolderDocuments, file.Filename)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		DocumentType: input.DocumentType,
		FileURL:      storedRef,
		Version:      1,
		Status:       domain.DocumentActive,
		CreatedBy:    user.ID,
	}

	err = s.txManager.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.documentRepo.Create(ctx, tx, doc)
	})
	if err != nil {
		// The stored file is the only artifact to undo; the row never
		// committed.
		s.backend.DeleteIfExists(ctx, storedRef)
		return nil, err
	}

	return doc, nil
}

func (s *documentService) List(ctx context.Context, filter domain.DocumentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Document], error) {
	docs, total, err := s.documentRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Document]{}, err
	}
	params.Validate()
	return domain.NewPaginatedResponse(docs, params.Page, params.PageSize, total), nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("DOCUMENT_NOT_FOUND", "Document not found")
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, user *domain.User, id uuid.UUID) (*DownloadResult, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() && doc.CreatedBy != user.ID {
		return nil, apperror.Forbidden("Not allowed to download this file")
	}

	content, err := s.backend.Open(ctx, doc.FileURL)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return nil, apperror.NotFound("FILE_NOT_FOUND", "Stored file not found")
		}
		return nil, err
	}

	return &DownloadResult{Filename: path.Base(doc.FileURL), Content: content}, nil
}

func (s *documentService) RequestReplace(ctx context.Context, documentID uuid.UUID, user *domain.User, input domain.ReplaceRequestInput, file FileUpload) (*domain.PermissionRequest, *domain.Document, error) {
	if file.Filename == "" {
		return nil, nil, apperror.BadRequest("INVALID_FILE", "Replacement file is required")
	}

	var (
		req        *domain.PermissionRequest
		doc        *domain.Document
		pendingRef string
	)

	err := s.txManager.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		doc, err = s.lockActiveDocument(ctx, tx, documentID, user, input.ExpectedVersion, "replace")
		if err != nil {
			return err
		}

		// Staged before commit: a failure from here on leaves an orphan
		// file, never a committed row pointing at nothing.
		pendingRef, err = s.backend.Save(ctx, file.Reader, file.Size, storage.FolderPending, file.Filename)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(domain.ReplacePayload{
			PendingFileURL:   pendingRef,
			OriginalFilename: file.Filename,
		})
		if err != nil {
			return err
		}

		req = &domain.PermissionRequest{
			ID:             uuid.New(),
			DocumentID:     &doc.ID,
			Action:         domain.ActionReplace,
			RequestedBy:    user.ID,
			RequesterEmail: user.Email,
			Status:         domain.RequestPending,
			Note:           input.Note,
			Payload:        payload,
		}
		if err := s.permissionRepo.Create(ctx, tx, req); err != nil {
			return err
		}

		doc.Status = domain.DocumentPendingReplace
		doc.LockedByRequestID = &req.ID
		if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
			return err
		}

		return s.notifyAdmins(ctx, tx, req)
	})
	if err != nil {
		if pendingRef != "" {
			s.backend.DeleteIfExists(ctx, pendingRef)
		}
		return nil, nil, err
	}

	s.emailAdminsAsync(req)

	return req, doc, nil
}

func (s *documentService) RequestDelete(ctx context.Context, documentID uuid.UUID, user *domain.User, input domain.DeleteRequestInput) (*domain.PermissionRequest, *domain.Document, error) {
	var (
		req *domain.PermissionRequest
		doc *domain.Document
	)

	err := s.txManager.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		doc, err = s.lockActiveDocument(ctx, tx, documentID, user, input.ExpectedVersion, "delete")
		if err != nil {
			return err
		}

		req = &domain.PermissionRequest{
			ID:             uuid.New(),
			DocumentID:     &doc.ID,
			Action:         domain.ActionDelete,
			RequestedBy:    user.ID,
			RequesterEmail: user.Email,
			Status:         domain.RequestPending,
			Note:           input.Note,
		}
		if err := s.permissionRepo.Create(ctx, tx, req); err != nil {
			return err
		}

		doc.Status = domain.DocumentPendingDelete
		doc.LockedByRequestID = &req.ID
		if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
			return err
		}

		return s.notifyAdmins(ctx, tx, req)
	})
	if err != nil {
		return nil, nil, err
	}

	s.emailAdminsAsync(req)

	return req, doc, nil
}

// lockActiveDocument acquires the document's row lock and validates that the
// caller may file a change request against it right now.
func (s *documentService) lockActiveDocument(ctx context.Context, tx *sqlx.Tx, documentID uuid.UUID, user *domain.User, expectedVersion int, verb string) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("DOCUMENT_NOT_FOUND", "Document not found")
	}

	if !user.IsAdmin() && doc.CreatedBy != user.ID {
		return nil, apperror.Forbidden("Not allowed to request " + verb + " for this document")
	}

	if doc.Status != domain.DocumentActive {
		return nil, apperror.Conflict("DOC_LOCKED", "Document is not active")
	}

	if doc.Version != expectedVersion {
		return nil, apperror.Conflict("VERSION_CONFLICT", "Document version conflict. Refresh and retry").
			WithDetails(map[string]int{"current_version": doc.Version})
	}

	return doc, nil
}

func (s *documentService) notifyAdmins(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return nil
	}

	verb := "Replace"
	if req.Action == domain.ActionDelete {
		verb = "Delete"
	}

	notifs := make([]*domain.Notification, 0, len(admins))
	for _, admin := range admins {
		reqID := req.ID
		notifs = append(notifs, &domain.Notification{
			ID:              uuid.New(),
			UserID:          admin.ID,
			Type:            domain.NotifPermissionRequest,
			Message:         fmt.Sprintf("%s request %s needs review", verb, req.ID),
			RelatedEntityID: &reqID,
		})
	}

	return s.notifRepo.CreateMany(ctx, tx, notifs)
}

func (s *documentService) emailAdminsAsync(req *domain.PermissionRequest) {
	go func() {
		ctx := context.Background()
		admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			log.Printf("failed to load admins for request email: %v", err)
			return
		}
		for _, admin := range admins {
			if err := s.email.SendRequestFiled(ctx, admin.Email, req); err != nil {
				log.Printf("failed to send request email to %s: %v", admin.Email, err)
			}
		}
	}()
}
