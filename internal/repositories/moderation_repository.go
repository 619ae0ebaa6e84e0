package repositories

import (
	"github.com/0xSujith18/Talkit/internal/models"
	"gorm.io/gorm"
)

// ModerationRepository defines the interface for moderation report operations
type ModerationRepository interface {
	CreateReport(report *models.ModerationReport) error
	GetReportByID(id uint) (*models.ModerationReport, error)
	ListPending() ([]models.ModerationReport, error)
	SaveReview(report *models.ModerationReport) error
}

// PostgresModerationRepository implements ModerationRepository for PostgreSQL
type PostgresModerationRepository struct {
	db *gorm.DB
}

// NewPostgresModerationRepository creates a new PostgresModerationRepository
func NewPostgresModerationRepository(db *gorm.DB) *PostgresModerationRepository {
	return &PostgresModerationRepository{db: db}
}

// CreateReport files a new moderation report
func (r *PostgresModerationRepository) CreateReport(report *models.ModerationReport) error {
	return r.db.Create(report).Error
}

// GetReportByID retrieves a moderation report by ID
func (r *PostgresModerationRepository) GetReportByID(id uint) (*models.ModerationReport, error) {
	var report models.ModerationReport
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListPending retrieves all unreviewed moderation reports, newest first
func (r *PostgresModerationRepository) ListPending() ([]models.ModerationReport, error) {
	var reports []models.ModerationReport
	err := r.db.Where("status = ?", models.ModerationPending).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// SaveReview persists the review outcome. The row is an audit record and is
// never deleted through this path.
func (r *PostgresModerationRepository) SaveReview(report *models.ModerationReport) error {
	return r.db.Save(report).Error
}
