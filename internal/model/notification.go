package model

import (
	"errors"
	"time"
)

// Notification types
const (
	NotificationTypeReply   = "reply"
	NotificationTypeMention = "mention" // reserved, never produced today
)

// Notification represents a single notification record in the database.
// TriggeredByID and CommentID are weak references: they are nulled or
// cascade-removed with the rows they point at, while the notification row
// itself lives as long as its recipient does.
type Notification struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"` // Recipient
	TriggeredByID *string   `db:"triggered_by_id" json:"triggeredById,omitempty"`
	CommentID     *string   `db:"comment_id" json:"commentId,omitempty"`
	Type          string    `db:"type" json:"type"`
	IsRead        bool      `db:"is_read" json:"isRead"`
	Message       string    `db:"message" json:"message"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`

	// Joined field for display
	TriggeredBy *UserSummary `json:"triggeredBy,omitempty"`
}

// UnreadCountResponse is the badge-count payload.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
