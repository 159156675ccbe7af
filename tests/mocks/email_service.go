package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arsip-dokumen/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendRequestFiled(ctx context.Context, toEmail string, req *domain.PermissionRequest) error {
	args := m.Called(ctx, toEmail, req)
	return args.Error(0)
}

func (m *EmailService) SendReviewResult(ctx context.Context, toEmail string, req *domain.PermissionRequest) error {
	args := m.Called(ctx, toEmail, req)
	return args.Error(0)
}
