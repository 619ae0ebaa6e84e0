package services

import (
	"errors"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/permissions"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"gorm.io/gorm"
)

// VerificationService owns the verified-badge workflow: a user applies,
// an admin approves or rejects, and approval flips the user's verified
// flag
type VerificationService struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(verificationRepo repositories.VerificationRepository, userRepo repositories.UserRepository) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
	}
}

// Request files a verification application for the caller. Already
// verified users and users with a pending application are refused.
func (s *VerificationService) Request(identity models.Identity, req *models.RequestVerificationRequest) (*models.VerificationRequest, error) {
	if identity.Verified {
		return nil, apperrors.Conflict("account is already verified")
	}
	if _, err := s.verificationRepo.GetPendingByUserID(identity.UserID); err == nil {
		return nil, apperrors.Conflict("a verification request is already pending")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	request := &models.VerificationRequest{
		UserID:       identity.UserID,
		FullName:     req.FullName,
		Category:     req.Category,
		Organization: req.Organization,
		Position:     req.Position,
		IDProof:      req.IDProof,
		Reason:       req.Reason,
		Status:       models.VerificationPending,
	}
	if err := s.verificationRepo.CreateRequest(request); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "file verification request", err)
	}
	return request, nil
}

// ListPending returns unreviewed verification requests for the admin queue
func (s *VerificationService) ListPending(identity models.Identity) ([]models.VerificationRequest, error) {
	if !permissions.Allowed(identity.Role, permissions.ReviewVerification) {
		return nil, apperrors.AccessDenied("admin access required")
	}
	requests, err := s.verificationRepo.ListPending()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return requests, nil
}

// Approve grants the verified badge: the user's flag flips and the request
// is stamped approved. Only pending requests can be approved.
func (s *VerificationService) Approve(identity models.Identity, requestID uint) (*models.VerificationRequest, error) {
	request, err := s.pendingRequest(identity, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetVerified(request.UserID, true); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "set verified flag", err)
	}
	return s.stampReview(identity, request, models.VerificationApproved)
}

// Reject declines the application. The request row survives with the
// rejected status, so the decision stays auditable.
func (s *VerificationService) Reject(identity models.Identity, requestID uint) (*models.VerificationRequest, error) {
	request, err := s.pendingRequest(identity, requestID)
	if err != nil {
		return nil, err
	}
	return s.stampReview(identity, request, models.VerificationRejected)
}

func (s *VerificationService) pendingRequest(identity models.Identity, requestID uint) (*models.VerificationRequest, error) {
	if !permissions.Allowed(identity.Role, permissions.ReviewVerification) {
		return nil, apperrors.AccessDenied("admin access required")
	}

	request, err := s.verificationRepo.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("verification request not found")
		}
		return nil, apperrors.Internal(err)
	}
	if request.Status != models.VerificationPending {
		return nil, apperrors.Conflict("verification request already reviewed")
	}
	return request, nil
}

func (s *VerificationService) stampReview(identity models.Identity, request *models.VerificationRequest, status string) (*models.VerificationRequest, error) {
	reviewerID := identity.UserID
	request.Status = status
	request.ReviewedByID = &reviewerID
	if err := s.verificationRepo.SaveReview(request); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "save verification review", err)
	}
	return request, nil
}
