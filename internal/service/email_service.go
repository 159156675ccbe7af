package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"arsip-dokumen/internal/config"
	"arsip-dokumen/internal/domain"
)

// EmailService mirrors the in-app notifications over email, best-effort.
// In-app notifications remain the source of truth; a lost email is never an
// error the workflow sees.
type EmailService interface {
	SendRequestFiled(ctx context.Context, toEmail string, req *domain.PermissionRequest) error
	SendReviewResult(ctx context.Context, toEmail string, req *domain.PermissionRequest) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) SendRequestFiled(ctx context.Context, toEmail string, req *domain.PermissionRequest) error {
	if s.config.ResendAPIKey == "" {
		return nil
	}

	verb := "replace"
	if req.Action == domain.ActionDelete {
		verb = "delete"
	}

	subject := fmt.Sprintf("Permintaan %s dokumen menunggu tinjauan", verb)
	html := fmt.Sprintf(`
<p>Halo,</p>
<p>Permintaan <strong>%s</strong> baru (<code>%s</code>) dari %s menunggu tinjauan Anda.</p>
<p>Silakan buka halaman permintaan izin untuk menyetujui atau menolak.</p>`,
		verb, req.ID, req.RequesterEmail)

	return s.send(ctx, toEmail, subject, html)
}

func (s *emailService) SendReviewResult(ctx context.Context, toEmail string, req *domain.PermissionRequest) error {
	if s.config.ResendAPIKey == "" {
		return nil
	}

	subject := fmt.Sprintf("Permintaan Anda telah %s", req.Status)
	html := fmt.Sprintf(`
<p>Halo,</p>
<p>Permintaan <code>%s</code> Anda telah <strong>%s</strong>.</p>`,
		req.ID, req.Status)

	if req.Note != nil && *req.Note != "" {
		html += fmt.Sprintf("<p>Catatan peninjau: %s</p>", *req.Note)
	}

	return s.send(ctx, toEmail, subject, html)
}

func (s *emailService) send(ctx context.Context, toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
