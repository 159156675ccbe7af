package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"arsip-dokumen/internal/domain"
)

type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error {
	args := m.Called(ctx, tx, doc)
	return args.Error(0)
}

func (m *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *DocumentRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *DocumentRepository) Update(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error {
	args := m.Called(ctx, tx, doc)
	return args.Error(0)
}

func (m *DocumentRepository) Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *DocumentRepository) List(ctx context.Context, filter domain.DocumentFilter, params domain.PaginationParams) ([]domain.Document, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Document), args.Get(1).(int64), args.Error(2)
}
