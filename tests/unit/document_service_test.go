package unit_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/repository"
	"arsip-dokumen/internal/service"
	"arsip-dokumen/internal/storage"
	"arsip-dokumen/tests/mocks"
)

type documentFixture struct {
	docRepo   *mocks.DocumentRepository
	permRepo  *mocks.PermissionRequestRepository
	notifRepo *mocks.NotificationRepository
	userRepo  *mocks.UserRepository
	txManager *mocks.TxManager
	backend   *mocks.StorageBackend
	email     *mocks.EmailService
	svc       service.DocumentService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		docRepo:   new(mocks.DocumentRepository),
		permRepo:  new(mocks.PermissionRequestRepository),
		notifRepo: new(mocks.NotificationRepository),
		userRepo:  new(mocks.UserRepository),
		txManager: new(mocks.TxManager),
		backend:   new(mocks.StorageBackend),
		email:     new(mocks.EmailService),
	}
	repos := &repository.Repositories{
		User:              f.userRepo,
		Document:          f.docRepo,
		PermissionRequest: f.permRepo,
		Notification:      f.notifRepo,
	}
	f.svc = service.NewDocumentService(repos, f.txManager, f.backend, f.email)

	// Admin emails go out from a goroutine after commit.
	f.email.On("SendRequestFiled", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return f
}

func regularUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "user@example.com", Role: domain.RoleUser}
}

func fileUpload(name, content string) service.FileUpload {
	return service.FileUpload{
		Filename: name,
		Size:     int64(len(content)),
		Reader:   strings.NewReader(content),
	}
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	user := regularUser()
	input := domain.UploadDocumentInput{
		Title:        "Laporan Tahunan 2025",
		Description:  "Laporan keuangan tahunan",
		DocumentType: "laporan",
	}

	t.Run("Success", func(t *testing.T) {
		f := newDocumentFixture()
		upload := fileUpload("laporan.pdf", "isi dokumen")

		f.backend.On("Save", ctx, upload.Reader, upload.Size, storage.FolderDocuments, "laporan.pdf").
			Return("documents/abc.pdf", nil).Once()
		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
			return d.Title == input.Title &&
				d.FileURL == "documents/abc.pdf" &&
				d.Version == 1 &&
				d.Status == domain.DocumentActive &&
				d.CreatedBy == user.ID
		})).Return(nil).Once()

		doc, err := f.svc.Upload(ctx, user, input, upload)

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		f.docRepo.AssertExpectations(t)
		f.backend.AssertExpectations(t)
	})

	t.Run("Missing File", func(t *testing.T) {
		f := newDocumentFixture()

		doc, err := f.svc.Upload(ctx, user, input, service.FileUpload{})

		assert.Nil(t, doc)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_FILE", appErr.Code)
		f.backend.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insert Failure Removes Stored File", func(t *testing.T) {
		f := newDocumentFixture()
		upload := fileUpload("laporan.pdf", "isi dokumen")

		f.backend.On("Save", ctx, upload.Reader, upload.Size, storage.FolderDocuments, "laporan.pdf").
			Return("documents/abc.pdf", nil).Once()
		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("duplicate key")).Once()
		f.backend.On("DeleteIfExists", ctx, "documents/abc.pdf").Once()

		doc, err := f.svc.Upload(ctx, user, input, upload)

		assert.Error(t, err)
		assert.Nil(t, doc)
		f.backend.AssertExpectations(t)
	})
}

func TestDocumentService_RequestReplace(t *testing.T) {
	ctx := context.Background()
	user := regularUser()
	admins := []domain.User{{ID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}}

	activeDoc := func() *domain.Document {
		return &domain.Document{
			ID:        uuid.New(),
			FileURL:   "documents/old.pdf",
			Version:   2,
			Status:    domain.DocumentActive,
			CreatedBy: user.ID,
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newDocumentFixture()
		doc := activeDoc()
		upload := fileUpload("baru.pdf", "isi baru")
		input := domain.ReplaceRequestInput{ExpectedVersion: 2}

		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("GetByIDForUpdate", ctx, mock.Anything, doc.ID).Return(doc, nil).Once()
		f.backend.On("Save", ctx, upload.Reader, upload.Size, storage.FolderPending, "baru.pdf").
			Return("pending/staged.pdf", nil).Once()
		f.permRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(r *domain.PermissionRequest) bool {
			return r.Action == domain.ActionReplace &&
				r.Status == domain.RequestPending &&
				r.RequestedBy == user.ID &&
				*r.DocumentID == doc.ID
		})).Return(nil).Once()
		f.docRepo.On("Update", ctx, mock.Anything, doc).Return(nil).Once()
		f.userRepo.On("ListByRole", mock.Anything, domain.RoleAdmin).Return(admins, nil)
		f.notifRepo.On("CreateMany", ctx, mock.Anything, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 1 && ns[0].UserID == admins[0].ID && ns[0].Type == domain.NotifPermissionRequest
		})).Return(nil).Once()

		req, updated, err := f.svc.RequestReplace(ctx, doc.ID, user, input, upload)

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, domain.DocumentPendingReplace, updated.Status)
		assert.Equal(t, &req.ID, updated.LockedByRequestID)

		payload, perr := req.ReplacePayload()
		assert.NoError(t, perr)
		assert.Equal(t, "pending/staged.pdf", payload.PendingFileURL)
		assert.Equal(t, "baru.pdf", payload.OriginalFilename)

		f.permRepo.AssertExpectations(t)
		f.notifRepo.AssertExpectations(t)
	})

	t.Run("Document Locked", func(t *testing.T) {
		f := newDocumentFixture()
		doc := activeDoc()
		doc.Status = domain.DocumentPendingDelete
		upload := fileUpload("baru.pdf", "isi baru")

		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("GetByIDForUpdate", ctx, mock.Anything, doc.ID).Return(doc, nil).Once()

		req, _, err := f.svc.RequestReplace(ctx, doc.ID, user, domain.ReplaceRequestInput{ExpectedVersion: 2}, upload)

		assert.Nil(t, req)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "DOC_LOCKED", appErr.Code)
		f.backend.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		f := newDocumentFixture()
		doc := activeDoc()
		upload := fileUpload("baru.pdf", "isi baru")

		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("GetByIDForUpdate", ctx, mock.Anything, doc.ID).Return(doc, nil).Once()

		req, _, err := f.svc.RequestReplace(ctx, doc.ID, user, domain.ReplaceRequestInput{ExpectedVersion: 1}, upload)

		assert.Nil(t, req)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "VERSION_CONFLICT", appErr.Code)
		assert.Equal(t, map[string]int{"current_version": 2}, appErr.Details)
	})

	t.Run("Not Owner", func(t *testing.T) {
		f := newDocumentFixture()
		doc := activeDoc()
		doc.CreatedBy = uuid.New()
		upload := fileUpload("baru.pdf", "isi baru")

		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("GetByIDForUpdate", ctx, mock.Anything, doc.ID).Return(doc, nil).Once()

		req, _, err := f.svc.RequestReplace(ctx, doc.ID, user, domain.ReplaceRequestInput{ExpectedVersion: 2}, upload)

		assert.Nil(t, req)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("Failure After Staging Removes Staged File", func(t *testing.T) {
		f := newDocumentFixture()
		doc := activeDoc()
		upload := fileUpload("baru.pdf", "isi baru")

		f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
		f.docRepo.On("GetByIDForUpdate", ctx, mock.Anything, doc.ID).Return(doc, nil).Once()
		f.backend.On("Save", ctx, upload.Reader, upload.Size, storage.FolderPending, "baru.pdf").
			Return("pending/staged.pdf", nil).Once()
		f.permRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
		f.backend.On("DeleteIfExists", ctx, "pending/staged.pdf").Once()

		req, _, err := f.svc.RequestReplace(ctx, doc.ID, user, domain.ReplaceRequestInput{ExpectedVersion: 2}, upload)

		assert.Error(t, err)
		assert.Nil(t, req)
		f.backend.AssertExpectations(t)
	})
}

func TestDocumentService_RequestDelete(t *testing.T) {
	ctx := context.Background()
	user := regularUser()
	admins := []domain.User{{ID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}}

	f := newDocumentFixture()
	doc := &domain.Document{
		ID:        uuid.New(),
		FileURL:   "documents/old.pdf",
		Version:   1,
		Status:    domain.DocumentActive,
		CreatedBy: user.ID,
	}

	f.txManager.On("WithTx", ctx).Return(nil, nil).Once()
	f.docRepo.On("GetByIDForUpdate", ctx, mock.Anything, doc.ID).Return(doc, nil).Once()
	f.permRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(r *domain.PermissionRequest) bool {
		return r.Action == domain.ActionDelete && r.Status == domain.RequestPending && len(r.Payload) == 0
	})).Return(nil).Once()
	f.docRepo.On("Update", ctx, mock.Anything, doc).Return(nil).Once()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleAdmin).Return(admins, nil)
	f.notifRepo.On("CreateMany", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	req, updated, err := f.svc.RequestDelete(ctx, doc.ID, user, domain.DeleteRequestInput{ExpectedVersion: 1})

	assert.NoError(t, err)
	assert.NotNil(t, req)
	assert.Equal(t, domain.DocumentPendingDelete, updated.Status)
	assert.Equal(t, &req.ID, updated.LockedByRequestID)
	f.permRepo.AssertExpectations(t)
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()
	owner := regularUser()

	doc := &domain.Document{
		ID:        uuid.New(),
		FileURL:   "documents/abc.pdf",
		Status:    domain.DocumentActive,
		CreatedBy: owner.ID,
	}

	t.Run("Owner Can Download", func(t *testing.T) {
		f := newDocumentFixture()
		content := io.NopCloser(strings.NewReader("isi dokumen"))

		f.docRepo.On("GetByID", ctx, doc.ID).Return(doc, nil).Once()
		f.backend.On("Open", ctx, "documents/abc.pdf").Return(content, nil).Once()

		result, err := f.svc.Download(ctx, owner, doc.ID)

		assert.NoError(t, err)
		assert.Equal(t, "abc.pdf", result.Filename)
	})

	t.Run("Other User Forbidden", func(t *testing.T) {
		f := newDocumentFixture()
		other := regularUser()

		f.docRepo.On("GetByID", ctx, doc.ID).Return(doc, nil).Once()

		result, err := f.svc.Download(ctx, other, doc.ID)

		assert.Nil(t, result)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		f.backend.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("Stored File Missing", func(t *testing.T) {
		f := newDocumentFixture()

		f.docRepo.On("GetByID", ctx, doc.ID).Return(doc, nil).Once()
		f.backend.On("Open", ctx, "documents/abc.pdf").Return(nil, storage.ErrNotFound).Once()

		result, err := f.svc.Download(ctx, owner, doc.ID)

		assert.Nil(t, result)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "FILE_NOT_FOUND", appErr.Code)
	})
}
