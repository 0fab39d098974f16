package models

import "time"

// Notification types emitted by interaction fan-out
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeMention = "mention"
	NotificationTypeReblip  = "reblip"
)

// Notification represents a user notification (PostgreSQL). Created only as
// a side effect of an interaction and never when actor == recipient; the only
// mutation after creation is flipping Read to true.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Type       string    `json:"type" gorm:"size:20;index"`
	FromUserID string    `json:"from_user_id" gorm:"size:128;index"`
	ToUserID   string    `json:"to_user_id" gorm:"size:128;index"`
	BlipID     string    `json:"blip_id,omitempty" gorm:"size:64"`
	Content    string    `json:"content,omitempty" gorm:"size:500"`
	Read       bool      `json:"read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
