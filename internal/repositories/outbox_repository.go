package repositories

import (
	"encoding/json"
	"time"

	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxRepository stages notification events for broker delivery
type OutboxRepository interface {
	Append(tx *gorm.DB, routingKey string, payload json.RawMessage) error
	GetPendingMessages(limit int) ([]models.OutboxMessage, error)
	MarkAsPublished(id uuid.UUID) error
	MarkAsFailed(id uuid.UUID, reason string) error
	DeletePublishedBefore(cutoff time.Time) error
}

// PostgresOutboxRepository implements OutboxRepository for PostgreSQL
type PostgresOutboxRepository struct {
	db *gorm.DB
}

// NewPostgresOutboxRepository creates a new PostgresOutboxRepository
func NewPostgresOutboxRepository(db *gorm.DB) *PostgresOutboxRepository {
	return &PostgresOutboxRepository{db: db}
}

// Append stages a message inside the caller's transaction so the event and
// the state change it describes commit or roll back together
func (r *PostgresOutboxRepository) Append(tx *gorm.DB, routingKey string, payload json.RawMessage) error {
	if tx == nil {
		tx = r.db
	}
	msg := &models.OutboxMessage{
		ID:         uuid.New(),
		RoutingKey: routingKey,
		Payload:    payload,
		Status:     models.OutboxPending,
		CreatedAt:  time.Now(),
	}
	return tx.Create(msg).Error
}

// GetPendingMessages fetches up to limit undelivered messages, oldest first
func (r *PostgresOutboxRepository) GetPendingMessages(limit int) ([]models.OutboxMessage, error) {
	var messages []models.OutboxMessage
	err := r.db.Where("status = ?", models.OutboxPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// MarkAsPublished records successful broker delivery
func (r *PostgresOutboxRepository) MarkAsPublished(id uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.OutboxMessage{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.OutboxPublished,
			"published_at": &now,
		}).Error
}

// MarkAsFailed records a delivery failure for later inspection
func (r *PostgresOutboxRepository) MarkAsFailed(id uuid.UUID, reason string) error {
	return r.db.Model(&models.OutboxMessage{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": models.OutboxFailed,
			"error":  reason,
		}).Error
}

// DeletePublishedBefore trims delivered messages older than the cutoff
func (r *PostgresOutboxRepository) DeletePublishedBefore(cutoff time.Time) error {
	return r.db.Where("status = ? AND published_at < ?", models.OutboxPublished, cutoff).
		Delete(&models.OutboxMessage{}).Error
}
