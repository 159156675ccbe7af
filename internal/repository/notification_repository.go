package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"arsip-dokumen/internal/domain"
)

type NotificationRepository interface {
	// Create inserts one notification. When tx is non-nil the insert joins
	// that transaction.
	Create(ctx context.Context, tx *sqlx.Tx, notif *domain.Notification) error

	// CreateMany fans out one row per recipient inside tx.
	CreateMany(ctx context.Context, tx *sqlx.Tx, notifs []*domain.Notification) error

	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error)

	// MarkAsRead marks the notification read when it belongs to userID.
	// Returns false when no such notification exists for that user.
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error)

	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, tx *sqlx.Tx, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, type, message, related_entity_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	if tx != nil {
		return tx.QueryRowxContext(ctx, query,
			notif.ID, notif.UserID, notif.Type, notif.Message, notif.RelatedEntityID,
		).Scan(&notif.CreatedAt)
	}

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.Type, notif.Message, notif.RelatedEntityID,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) CreateMany(ctx context.Context, tx *sqlx.Tx, notifs []*domain.Notification) error {
	for _, notif := range notifs {
		if err := r.Create(ctx, tx, notif); err != nil {
			return err
		}
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE notifications
		SET is_read = true, read_at = COALESCE(read_at, NOW())
		WHERE notification_id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND is_read = false`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
