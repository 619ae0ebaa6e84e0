package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outbox message statuses
const (
	OutboxPending   = "pending"
	OutboxPublished = "published"
	OutboxFailed    = "failed"
)

// OutboxMessage is a notification event staged for broker delivery.
// Rows are written in the same transaction as the notification itself so
// the broker stream never diverges from the sink.
type OutboxMessage struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	RoutingKey  string          `json:"routing_key" gorm:"size:100"`
	Payload     json.RawMessage `json:"payload" gorm:"type:jsonb"`
	Status      string          `json:"status" gorm:"size:20;default:pending;index"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
}
