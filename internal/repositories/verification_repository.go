package repositories

import (
	"github.com/0xSujith18/Talkit/internal/models"
	"gorm.io/gorm"
)

// VerificationRepository defines the interface for verification request
// operations
type VerificationRepository interface {
	CreateRequest(request *models.VerificationRequest) error
	GetRequestByID(id uint) (*models.VerificationRequest, error)
	GetPendingByUserID(userID uint) (*models.VerificationRequest, error)
	ListPending() ([]models.VerificationRequest, error)
	SaveReview(request *models.VerificationRequest) error
}

// PostgresVerificationRepository implements VerificationRepository for
// PostgreSQL
type PostgresVerificationRepository struct {
	db *gorm.DB
}

// NewPostgresVerificationRepository creates a new PostgresVerificationRepository
func NewPostgresVerificationRepository(db *gorm.DB) *PostgresVerificationRepository {
	return &PostgresVerificationRepository{db: db}
}

// CreateRequest stores a new verification request
func (r *PostgresVerificationRepository) CreateRequest(request *models.VerificationRequest) error {
	return r.db.Create(request).Error
}

// GetRequestByID retrieves a verification request by id
func (r *PostgresVerificationRepository) GetRequestByID(id uint) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetPendingByUserID retrieves the user's pending request, if any
func (r *PostgresVerificationRepository) GetPendingByUserID(userID uint) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.Where("user_id = ? AND status = ?", userID, models.VerificationPending).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPending returns unreviewed verification requests, newest first
func (r *PostgresVerificationRepository) ListPending() ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest
	err := r.db.Where("status = ?", models.VerificationPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// SaveReview persists the reviewed request
func (r *PostgresVerificationRepository) SaveReview(request *models.VerificationRequest) error {
	return r.db.Save(request).Error
}
