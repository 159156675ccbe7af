package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"arsip-dokumen/internal/domain"
)

type PermissionRequestRepository struct {
	mock.Mock
}

func (m *PermissionRequestRepository) Create(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error {
	args := m.Called(ctx, tx, req)
	return args.Error(0)
}

func (m *PermissionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PermissionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermissionRequest), args.Error(1)
}

func (m *PermissionRequestRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.PermissionRequest, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermissionRequest), args.Error(1)
}

func (m *PermissionRequestRepository) UpdateReview(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error {
	args := m.Called(ctx, tx, req)
	return args.Error(0)
}

func (m *PermissionRequestRepository) List(ctx context.Context, status *domain.PermissionRequestStatus, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.PermissionRequest), args.Get(1).(int64), args.Error(2)
}
