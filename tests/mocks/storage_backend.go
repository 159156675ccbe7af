package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type StorageBackend struct {
	mock.Mock
}

func (m *StorageBackend) Save(ctx context.Context, r io.Reader, size int64, folder, originalName string) (string, error) {
	args := m.Called(ctx, r, size, folder, originalName)
	return args.String(0), args.Error(1)
}

func (m *StorageBackend) Promote(ctx context.Context, pendingRef string) (string, error) {
	args := m.Called(ctx, pendingRef)
	return args.String(0), args.Error(1)
}

func (m *StorageBackend) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *StorageBackend) DeleteIfExists(ctx context.Context, ref string) {
	m.Called(ctx, ref)
}
