package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/permissions"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"gorm.io/gorm"
)

// ModerationService owns the content moderation workflow: filing reports
// against content and the admin review that may remove the target
type ModerationService struct {
	moderationRepo repositories.ModerationRepository
	postRepo       repositories.PostRepository
	commentRepo    repositories.CommentRepository
}

// NewModerationService creates a new ModerationService
func NewModerationService(moderationRepo repositories.ModerationRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *ModerationService {
	return &ModerationService{
		moderationRepo: moderationRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
}

// File records a moderation report against a post, comment, or user.
// Any authenticated identity may file.
func (s *ModerationService) File(identity models.Identity, req *models.FileModerationReportRequest) (*models.ModerationReport, error) {
	report := &models.ModerationReport{
		ReporterID:  identity.UserID,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.ModerationPending,
	}
	if err := s.moderationRepo.CreateReport(report); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "file moderation report", err)
	}
	return report, nil
}

// ListPending returns unreviewed moderation reports for the admin queue
func (s *ModerationService) ListPending(identity models.Identity) ([]models.ModerationReport, error) {
	if !permissions.Allowed(identity.Role, permissions.ReviewModeration) {
		return nil, apperrors.AccessDenied("admin access required")
	}
	reports, err := s.moderationRepo.ListPending()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}

// Review resolves a moderation report. When the outcome is action_taken the
// target is removed from its owning store as part of the same call; for any
// other outcome the target is untouched. The moderation row itself survives
// either way as the audit trail.
func (s *ModerationService) Review(ctx context.Context, identity models.Identity, reportID uint, req *models.ReviewModerationReportRequest) (*models.ModerationReport, error) {
	if !permissions.Allowed(identity.Role, permissions.ReviewModeration) {
		return nil, apperrors.AccessDenied("admin access required")
	}

	report, err := s.moderationRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("moderation report not found")
		}
		return nil, apperrors.Internal(err)
	}

	if req.Status == models.ModerationActionTaken {
		if err := s.removeTarget(ctx, report); err != nil {
			return nil, err
		}
	}

	reviewerID := identity.UserID
	report.Status = req.Status
	report.Action = req.Action
	report.ReviewedByID = &reviewerID
	if err := s.moderationRepo.SaveReview(report); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "save review", err)
	}
	return report, nil
}

// removeTarget deletes the reported entity. A target that is already gone
// counts as removed. User targets have no removal behavior yet; the review
// is recorded without touching the account.
func (s *ModerationService) removeTarget(ctx context.Context, report *models.ModerationReport) error {
	switch report.TargetType {
	case models.ModerationTargetPost:
		if err := s.postRepo.DeletePost(ctx, report.TargetID); err != nil && !errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.Wrap(apperrors.KindInternal, "delete reported post", err)
		}
		if err := s.commentRepo.DeleteCommentsByPostID(report.TargetID); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "cascade reported post comments", err)
		}
	case models.ModerationTargetComment:
		commentID, err := strconv.ParseUint(report.TargetID, 10, 64)
		if err != nil {
			return apperrors.Validation("invalid comment target id")
		}
		if err := s.commentRepo.DeleteComment(uint(commentID)); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "delete reported comment", err)
		}
	case models.ModerationTargetUser:
		// Accepted by the data model; suspension/removal is an undecided
		// product behavior.
	}
	return nil
}
