package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"arsip-dokumen/internal/domain"
)

type PermissionRequestRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PermissionRequest, error)

	// GetByIDForUpdate loads the request under an exclusive row lock held
	// until tx finishes, serializing concurrent reviewers.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.PermissionRequest, error)

	// UpdateReview persists the review outcome: status, reviewer,
	// reviewed_at, note and (for approved deletes) the cleared document id.
	UpdateReview(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error

	List(ctx context.Context, status *domain.PermissionRequestStatus, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error)
}

type permissionRequestRepository struct {
	db *sqlx.DB
}

func NewPermissionRequestRepository(db *sqlx.DB) PermissionRequestRepository {
	return &permissionRequestRepository{db: db}
}

func (r *permissionRequestRepository) Create(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error {
	query := `
		INSERT INTO permission_requests (request_id, document_id, action, requested_by, requester_email, status, note, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING requested_at`

	return tx.QueryRowxContext(ctx, query,
		req.ID, req.DocumentID, req.Action, req.RequestedBy,
		req.RequesterEmail, req.Status, req.Note, req.Payload,
	).Scan(&req.RequestedAt)
}

func (r *permissionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PermissionRequest, error) {
	var req domain.PermissionRequest
	query := `SELECT * FROM permission_requests WHERE request_id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *permissionRequestRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.PermissionRequest, error) {
	var req domain.PermissionRequest
	query := `SELECT * FROM permission_requests WHERE request_id = $1 FOR UPDATE`

	err := tx.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *permissionRequestRepository) UpdateReview(ctx context.Context, tx *sqlx.Tx, req *domain.PermissionRequest) error {
	query := `
		UPDATE permission_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, note = $5, document_id = $6
		WHERE request_id = $1`

	_, err := tx.ExecContext(ctx, query,
		req.ID, req.Status, req.ReviewedBy, req.ReviewedAt, req.Note, req.DocumentID,
	)
	return err
}

func (r *permissionRequestRepository) List(ctx context.Context, status *domain.PermissionRequestStatus, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error) {
	params.Validate()

	var total int64
	var requests []domain.PermissionRequest

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM permission_requests WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM permission_requests
			WHERE status = $1
			ORDER BY requested_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &requests, query, *status, params.PageSize, params.Offset())
		return requests, total, err
	}

	countQuery := `SELECT COUNT(*) FROM permission_requests`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM permission_requests
		ORDER BY requested_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &requests, query, params.PageSize, params.Offset())
	return requests, total, err
}
