package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/permissions"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"gorm.io/gorm"
)

const reportIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReportService owns the civic report lifecycle: creation, the status
// workflow, and the one-way publish-to-feed promotion
type ReportService struct {
	reportRepo  repositories.ReportRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	notifier    Notifier
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repositories.ReportRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, notifier Notifier) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

// generateReportID builds a human-readable id: TLK-, a base-36 timestamp,
// and a short random suffix
func generateReportID() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = reportIDAlphabet[rand.Intn(len(reportIDAlphabet))]
	}
	return fmt.Sprintf("TLK-%s-%s", timestamp, suffix)
}

// CreateReport files a new report owned by the caller
func (s *ReportService) CreateReport(identity models.Identity, req *models.CreateReportRequest) (*models.Report, error) {
	if len(req.Media) == 0 {
		return nil, apperrors.Validation("at least one photo is required")
	}
	if req.Lat == nil || req.Lng == nil {
		return nil, apperrors.Validation("location coordinates are required")
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}

	report := &models.Report{
		ReportID:    generateReportID(),
		UserID:      identity.UserID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Media:       req.Media,
		Address:     req.Address,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		MLA:         req.MLA,
		CivicBody:   req.CivicBody,
		Privacy:     privacy,
		Status:      models.StatusPending,
	}

	if err := s.reportRepo.CreateReport(report); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "create report", err)
	}
	return report, nil
}

// GetReport retrieves a report, enforcing the privacy gate: a report scoped
// to authorities is hidden from citizens other than its owner
func (s *ReportService) GetReport(identity models.Identity, reportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("report not found")
		}
		return nil, apperrors.Internal(err)
	}

	if report.Privacy == models.PrivacyAuthoritiesOnly &&
		!permissions.Allowed(identity.Role, permissions.ReadRestricted) &&
		report.UserID != identity.UserID {
		return nil, apperrors.AccessDenied("access denied")
	}

	return report, nil
}

// ListReports returns a filtered page of reports. Callers without the
// list-all capability are always scoped to their own reports; the scoping
// happens here and cannot be bypassed through query parameters.
func (s *ReportService) ListReports(identity models.Identity, category, status string, page, limit int) ([]models.Report, int64, int, error) {
	filter := repositories.ReportFilter{Category: category, Status: status}
	if !permissions.Allowed(identity.Role, permissions.ListAllReports) {
		filter.UserID = identity.UserID
	}

	reports, total, err := s.reportRepo.ListReports(filter, page, limit)
	if err != nil {
		return nil, 0, 0, apperrors.Internal(err)
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return reports, total, pages, nil
}

// UpdateStatus moves a report through the resolution workflow and notifies
// the owner. Action proof, when supplied, is appended, never replaced.
func (s *ReportService) UpdateStatus(identity models.Identity, reportID string, req *models.UpdateReportStatusRequest) (*models.Report, error) {
	if !permissions.Allowed(identity.Role, permissions.UpdateReportStatus) {
		return nil, apperrors.AccessDenied("authority access required")
	}

	report, err := s.reportRepo.UpdateStatus(reportID, req.Status, req.ActionProof)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("report not found")
		}
		return nil, apperrors.Internal(err)
	}

	s.notifier.Notify(&models.Notification{
		RecipientID: report.UserID,
		Type:        models.NotificationStatusUpdate,
		ActorID:     identity.UserID,
		Message:     fmt.Sprintf("Report %s status updated to %s", report.ReportID, req.Status),
	})

	return report, nil
}

// Publish promotes a report into the public feed. The promotion is one-way:
// only the owner may trigger it, and it succeeds at most once. The post is
// created first and the report flip is conditional; when the flip loses (a
// concurrent publish already won, or the report vanished mid-flight) the
// fresh post is removed again so the feed gains exactly one post per report.
func (s *ReportService) Publish(ctx context.Context, identity models.Identity, reportID string) (*models.Report, *models.Post, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("report not found")
		}
		return nil, nil, apperrors.Internal(err)
	}

	if report.UserID != identity.UserID {
		return nil, nil, apperrors.AccessDenied("only the report owner may publish")
	}
	if report.PublishedToFeed {
		return nil, nil, apperrors.Conflict("report already published to feed")
	}

	post := &models.Post{
		UserID:    report.UserID,
		Anonymous: report.Privacy == models.PrivacyAnonymous,
		Caption:   fmt.Sprintf("%s\n\n%s\n\nReport ID: %s", report.Title, report.Description, report.ReportID),
		Media:     report.Media,
		Location: &models.PostLocation{
			Address: report.Address,
			Lat:     report.Lat,
			Lng:     report.Lng,
		},
		Category: models.PostCategoryComplaint,
		Hashtags: []string{report.Category, "report"},
		Status:   models.StatusPending,
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindInternal, "create feed post", err)
	}

	flipped, err := s.reportRepo.MarkPublished(report.ReportID, post.ID.Hex())
	if err != nil || !flipped {
		// Roll the post back, along with any comments that landed on it in
		// the window; the report keeps whichever state won.
		if delErr := s.postRepo.DeletePost(ctx, post.ID.Hex()); delErr != nil {
			log.Printf("publish: compensate post %s: %v", post.ID.Hex(), delErr)
		}
		if delErr := s.commentRepo.DeleteCommentsByPostID(post.ID.Hex()); delErr != nil {
			log.Printf("publish: compensate comments on post %s: %v", post.ID.Hex(), delErr)
		}
		if err != nil {
			return nil, nil, apperrors.Internal(err)
		}
		return nil, nil, apperrors.Conflict("report already published to feed")
	}

	report.PublishedToFeed = true
	report.FeedPostID = post.ID.Hex()
	return report, post, nil
}

// Analytics summarizes report counts for authority dashboards
func (s *ReportService) Analytics(identity models.Identity) (*models.ReportAnalytics, error) {
	if !permissions.Allowed(identity.Role, permissions.ViewAnalytics) {
		return nil, apperrors.AccessDenied("authority access required")
	}
	summary, err := s.reportRepo.Analytics()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return summary, nil
}
