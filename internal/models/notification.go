package models

import "time"

// Notification event types
const (
	NotificationLike              = "like"
	NotificationComment           = "comment"
	NotificationAuthorityResponse = "authority_response"
	NotificationStatusUpdate      = "status_update"
)

// Notification represents a recorded lifecycle event for a user (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id,omitempty"`
	PostID      string    `json:"post_id,omitempty"` // Mongo post ObjectID as hex string, when the event concerns a post
	Message     string    `json:"message"`
	Read        bool      `json:"read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
