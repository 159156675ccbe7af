package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/service"
	"arsip-dokumen/tests/mocks"
)

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(repo)

		repo.On("MarkAsRead", ctx, notifID, userID).Return(true, nil).Once()

		err := svc.MarkRead(ctx, notifID, userID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Not Found Or Not Owned", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(repo)

		repo.On("MarkAsRead", ctx, notifID, userID).Return(false, nil).Once()

		err := svc.MarkRead(ctx, notifID, userID)

		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "NOTIFICATION_NOT_FOUND", appErr.Code)
	})
}

func TestNotificationService_ListForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(repo)

	params := domain.PaginationParams{Page: 1, PageSize: 10}
	notifs := []domain.Notification{
		{ID: uuid.New(), UserID: userID, Type: domain.NotifPermissionResult},
		{ID: uuid.New(), UserID: userID, Type: domain.NotifPermissionRequest},
	}

	repo.On("ListByUser", ctx, userID, params).Return(notifs, int64(2), nil).Once()

	result, err := svc.ListForUser(ctx, userID, params)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)
}

func TestNotificationService_Counts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(repo)

	repo.On("CountUnread", ctx, userID).Return(int64(3), nil).Once()
	repo.On("MarkAllAsRead", ctx, userID).Return(int64(3), nil).Once()

	count, err := svc.CountUnread(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	updated, err := svc.MarkAllRead(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}
