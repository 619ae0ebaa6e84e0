package repositories

import (
	"fmt"

	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ReportFilter narrows a report listing. A zero value means no filtering.
// UserID is set by the service layer for citizen callers and cannot be
// supplied through query parameters.
type ReportFilter struct {
	UserID   uint
	Category string
	Status   string
}

// ReportRepository defines the interface for civic report data operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(reportID string) (*models.Report, error)
	ListReports(filter ReportFilter, page, limit int) ([]models.Report, int64, error)
	UpdateStatus(reportID string, status string, actionProof []string) (*models.Report, error)
	MarkPublished(reportID string, feedPostID string) (bool, error)
	DeleteReportsByUserID(userID uint) error
	Analytics() (*models.ReportAnalytics, error)
}

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a new PostgresReportRepository
func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

// CreateReport creates a new report in PostgreSQL
func (r *PostgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

// GetReportByID retrieves a report by its public report id
func (r *PostgresReportRepository) GetReportByID(reportID string) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("report_id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (f ReportFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

// ListReports retrieves a page of reports plus the total matching count
func (r *PostgresReportRepository) ListReports(filter ReportFilter, page, limit int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	if err := filter.apply(r.db.Model(&models.Report{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := filter.apply(r.db).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error

	return reports, total, err
}

// UpdateStatus sets the workflow status and appends action proof, returning
// the updated report. The proof append happens inside the UPDATE itself, so
// concurrent updates each land their entries: existing entries are never
// replaced or removed.
func (r *PostgresReportRepository) UpdateStatus(reportID string, status string, actionProof []string) (*models.Report, error) {
	updates := map[string]interface{}{"status": status}
	if len(actionProof) > 0 {
		updates["action_proof"] = gorm.Expr("COALESCE(action_proof, '{}') || ?", pq.StringArray(actionProof))
	}

	res := r.db.Model(&models.Report{}).Where("report_id = ?", reportID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var report models.Report
	if err := r.db.Where("report_id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// MarkPublished flips published_to_feed and records the feed post id.
// The WHERE clause makes the flip conditional: a report already published
// is left untouched and false is returned, so concurrent publishes cannot
// both win.
func (r *PostgresReportRepository) MarkPublished(reportID string, feedPostID string) (bool, error) {
	res := r.db.Model(&models.Report{}).
		Where("report_id = ? AND published_to_feed = ?", reportID, false).
		Updates(map[string]interface{}{
			"published_to_feed": true,
			"feed_post_id":      feedPostID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteReportsByUserID removes all reports owned by a user
func (r *PostgresReportRepository) DeleteReportsByUserID(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Report{}).Error
}

// Analytics aggregates report counts by status and by category
func (r *PostgresReportRepository) Analytics() (*models.ReportAnalytics, error) {
	summary := &models.ReportAnalytics{ByCategory: make(map[string]int64)}

	statusCounts := map[string]*int64{
		models.StatusPending:    &summary.Pending,
		models.StatusInProgress: &summary.InProgress,
		models.StatusResolved:   &summary.Resolved,
	}

	if err := r.db.Model(&models.Report{}).Count(&summary.Total).Error; err != nil {
		return nil, err
	}
	for status, dest := range statusCounts {
		if err := r.db.Model(&models.Report{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, err
		}
	}

	var rows []struct {
		Category string
		Count    int64
	}
	if err := r.db.Model(&models.Report{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate by category: %w", err)
	}
	for _, row := range rows {
		summary.ByCategory[row.Category] = row.Count
	}

	return summary, nil
}
