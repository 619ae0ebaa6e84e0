package services

import (
	"encoding/json"
	"log"

	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"gorm.io/gorm"
)

// Notifier is the sink for lifecycle events. Recording a notification must
// never fail or block the operation that triggered it.
type Notifier interface {
	Notify(notification *models.Notification)
}

// NotificationService persists notifications and stages a copy on the
// outbox for broker delivery, both in one transaction
type NotificationService struct {
	db         *gorm.DB
	outboxRepo repositories.OutboxRepository
}

// NewNotificationService creates a new NotificationService. outboxRepo may
// be nil when no broker is configured.
func NewNotificationService(db *gorm.DB, outboxRepo repositories.OutboxRepository) *NotificationService {
	return &NotificationService{db: db, outboxRepo: outboxRepo}
}

// Notify records the event. Failures are logged and swallowed: the
// lifecycle transition that emitted the event has already happened.
func (s *NotificationService) Notify(notification *models.Notification) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		if s.outboxRepo == nil {
			return nil
		}
		payload, err := json.Marshal(notification)
		if err != nil {
			return err
		}
		return s.outboxRepo.Append(tx, "notification."+notification.Type, payload)
	})
	if err != nil {
		log.Printf("notification: record %s for user %d: %v", notification.Type, notification.RecipientID, err)
	}
}
