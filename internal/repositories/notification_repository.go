package repositories

import (
	"github.com/blipsapp/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByRecipient(userID string, limit int) ([]models.Notification, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(id uint, userID string) error
	MarkAllAsRead(userID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipient(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("to_user_id = ? AND read = false", userID).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips a notification to read. Scoped to the recipient so one
// user cannot mark another's notifications.
func (r *postgresNotificationRepository) MarkAsRead(id uint, userID string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND to_user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("to_user_id = ? AND read = false", userID).
		Update("read", true).Error
}
