package repository

import (
	"context"
	"time"

	"commentboard/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type CommentRepository interface {
	// Create inserts a new comment and fills in the generated timestamps
	Create(ctx context.Context, comment *model.Comment) error
	// GetByID retrieves a single comment with its author joined
	GetByID(ctx context.Context, commentID string) (*model.Comment, error)
	// GetAll returns every comment with authors joined, ascending created_at
	GetAll(ctx context.Context) ([]model.Comment, error)
	// GetChildren returns the direct replies of a comment, ascending created_at
	GetChildren(ctx context.Context, parentID string) ([]model.Comment, error)
	// UpdateContent overwrites the content and bumps updated_at
	UpdateContent(ctx context.Context, commentID, content string) (*model.Comment, error)
	// MarkDeleted sets is_deleted and deleted_at
	MarkDeleted(ctx context.Context, commentID string, deletedAt time.Time) error
	// ClearDeleted resets is_deleted and nulls deleted_at
	ClearDeleted(ctx context.Context, commentID string) (*model.Comment, error)
}

type NotificationRepository interface {
	// Create inserts a new notification
	Create(ctx context.Context, notif *model.Notification) error
	// GetByUserID returns all notifications for a recipient, newest first
	GetByUserID(ctx context.Context, userID string) ([]model.Notification, error)
	// MarkAsRead flips is_read for one notification owned by userID
	MarkAsRead(ctx context.Context, notificationID, userID string) (*model.Notification, error)
	// MarkAllAsRead flips is_read for all of a user's unread notifications
	MarkAllAsRead(ctx context.Context, userID string) error
	// GetUnreadCount returns the count of unread notifications
	GetUnreadCount(ctx context.Context, userID string) (int, error)
}
