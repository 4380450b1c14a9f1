package service

import (
	"context"
	"log"

	"commentboard/internal/model"
	"commentboard/internal/repository"
)

// NotificationService handles notification-related business logic. Clients
// poll the read endpoints; there is no push channel.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// CreateNotification persists a notification for a recipient. One row per
// qualifying event, no deduplication or batching. Self-notification is a
// no-op guard; callers already skip it, this keeps the invariant local too.
func (s *NotificationService) CreateNotification(
	ctx context.Context,
	userID, triggeredByID string,
	commentID *string,
	notifType, message string,
) error {
	if userID == triggeredByID {
		return nil
	}

	notif := &model.Notification{
		UserID:        userID,
		TriggeredByID: &triggeredByID,
		CommentID:     commentID,
		Type:          notifType,
		Message:       message,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	log.Printf("[NotificationService] Created %s notification %s for user %s", notifType, notif.ID, userID)
	return nil
}

// GetForUser returns all notifications for a user, newest first.
func (s *NotificationService) GetForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifRepo.GetByUserID(ctx, userID)
}

// MarkAsRead marks a single notification as read. Scoped to the owner, so
// a user cannot flip someone else's notification.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	return s.notifRepo.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead marks all notifications for a user as read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the number of unread notifications (for badge display).
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notifRepo.GetUnreadCount(ctx, userID)
}
