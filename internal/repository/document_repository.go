package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"arsip-dokumen/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)

	// GetByIDForUpdate loads the document under an exclusive row lock held
	// until tx finishes. Required before any state or version mutation.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Document, error)

	Update(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error
	Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error
	List(ctx context.Context, filter domain.DocumentFilter, params domain.PaginationParams) ([]domain.Document, int64, error)
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error {
	query := `
		INSERT INTO documents (document_id, title, description, document_type, file_url, version, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return tx.QueryRowxContext(ctx, query,
		doc.ID, doc.Title, doc.Description, doc.DocumentType,
		doc.FileURL, doc.Version, doc.Status, doc.CreatedBy,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE document_id = $1`

	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE document_id = $1 FOR UPDATE`

	err := tx.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Update(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error {
	query := `
		UPDATE documents
		SET title = $2, description = $3, document_type = $4, file_url = $5,
		    version = $6, status = $7, locked_by_request_id = $8, updated_at = NOW()
		WHERE document_id = $1
		RETURNING updated_at`

	return tx.QueryRowxContext(ctx, query,
		doc.ID, doc.Title, doc.Description, doc.DocumentType,
		doc.FileURL, doc.Version, doc.Status, doc.LockedByRequestID,
	).Scan(&doc.UpdatedAt)
}

func (r *documentRepository) Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE document_id = $1`
	_, err := tx.ExecContext(ctx, query, id)
	return err
}

func (r *documentRepository) List(ctx context.Context, filter domain.DocumentFilter, params domain.PaginationParams) ([]domain.Document, int64, error) {
	params.Validate()

	where := ` WHERE 1=1`
	args := []any{}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		where += ` AND (title ILIKE $` + strconv.Itoa(n) + ` OR description ILIKE $` + strconv.Itoa(n) + `)`
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.DocumentType != nil && *filter.DocumentType != "" {
		args = append(args, *filter.DocumentType)
		where += ` AND document_type ILIKE $` + strconv.Itoa(len(args))
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM documents`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := `SELECT * FROM documents` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs, query, args...)
	return docs, total, err
}
