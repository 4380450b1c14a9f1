package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"commentboard/internal/model"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a new notification.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	query := `
		INSERT INTO notifications (id, user_id, triggered_by_id, comment_id, type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING is_read, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, n.ID, n.UserID, n.TriggeredByID, n.CommentID, n.Type, n.Message)
	if err := row.Scan(&n.IsRead, &n.CreatedAt); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByUserID returns all notifications for a recipient, newest first, with
// the triggering user joined for display.
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `
		SELECT n.id, n.user_id, n.triggered_by_id, n.comment_id, n.type, n.is_read, n.message, n.created_at,
		       u.id as "triggered_by.id", u.username as "triggered_by.username"
		FROM notifications n
		LEFT JOIN users u ON u.id = n.triggered_by_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
	`

	type notifRow struct {
		ID            string    `db:"id"`
		UserID        string    `db:"user_id"`
		TriggeredByID *string   `db:"triggered_by_id"`
		CommentID     *string   `db:"comment_id"`
		Type          string    `db:"type"`
		IsRead        bool      `db:"is_read"`
		Message       string    `db:"message"`
		CreatedAt     time.Time `db:"created_at"`
		ActorID       *string   `db:"triggered_by.id"`
		ActorUsername *string   `db:"triggered_by.username"`
	}

	var rows []notifRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}

	notifications := make([]model.Notification, len(rows))
	for i, row := range rows {
		notifications[i] = model.Notification{
			ID:            row.ID,
			UserID:        row.UserID,
			TriggeredByID: row.TriggeredByID,
			CommentID:     row.CommentID,
			Type:          row.Type,
			IsRead:        row.IsRead,
			Message:       row.Message,
			CreatedAt:     row.CreatedAt,
		}
		// LEFT JOIN: the triggering user may have been removed
		if row.ActorID != nil && row.ActorUsername != nil {
			notifications[i].TriggeredBy = &model.UserSummary{
				ID:       *row.ActorID,
				Username: *row.ActorUsername,
			}
		}
	}

	return notifications, nil
}

// MarkAsRead marks a single notification as read, scoped to its owner.
func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, triggered_by_id, comment_id, type, is_read, message, created_at
	`
	var n model.Notification
	err := r.db.GetContext(ctx, &n, query, notificationID, userID)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark notification as read: %w", err)
	}
	return &n, nil
}

// MarkAllAsRead marks all notifications for a user as read.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE user_id = $1 AND is_read = false
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("mark all notifications as read: %w", err)
	}
	return nil
}

// GetUnreadCount returns the count of unread notifications.
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = false
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("get unread count: %w", err)
	}
	return count, nil
}
