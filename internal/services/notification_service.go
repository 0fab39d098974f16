package services

import (
	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"go.uber.org/zap"
)

// notificationFeedLimit caps the notification list read path
const notificationFeedLimit = 50

// NotificationService owns notification fan-out and the notification read
// paths. Fan-out writes are best-effort: a failed write is logged and never
// aborts the interaction that triggered it.
type NotificationService struct {
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notificationRepo, logger: logger}
}

// Notify records a notification of the given type from one user to another.
// Self-targeted notifications are suppressed: interacting with your own
// content never notifies you.
func (s *NotificationService) Notify(notifType, fromUserID, toUserID, blipID, content string) {
	if fromUserID == toUserID || toUserID == "" {
		return
	}

	notification := &models.Notification{
		Type:       notifType,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		BlipID:     blipID,
		Content:    content,
	}
	if err := s.notifications.Create(notification); err != nil {
		s.logger.Warn("notification write failed",
			zap.String("type", notifType),
			zap.String("from", fromUserID),
			zap.String("to", toUserID),
			zap.Error(err))
	}
}

// List returns the recipient's notifications, newest first, capped at 50
func (s *NotificationService) List(userID string) ([]models.Notification, error) {
	return s.notifications.GetByRecipient(userID, notificationFeedLimit)
}

// UnreadCount returns the number of unread notifications for the recipient
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.notifications.GetUnreadCount(userID)
}

// MarkRead flips a single notification to read for its recipient
func (s *NotificationService) MarkRead(id uint, userID string) error {
	return mapNotFound(s.notifications.MarkAsRead(id, userID))
}

// MarkAllRead flips all of the recipient's unread notifications to read
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notifications.MarkAllAsRead(userID)
}
