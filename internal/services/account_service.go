package services

import (
	"context"
	"log"
	"time"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/repositories"
)

// DeletionGracePeriod is the window between a deletion request and the
// sweep actually removing the account
const DeletionGracePeriod = 7 * 24 * time.Hour

// AccountService owns scheduled account deletion: the request that starts
// the grace period and the cascade that removes everything the user owns
type AccountService struct {
	userRepo         repositories.UserRepository
	reportRepo       repositories.ReportRepository
	postRepo         repositories.PostRepository
	commentRepo      repositories.CommentRepository
	notificationRepo repositories.NotificationRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(
	userRepo repositories.UserRepository,
	reportRepo repositories.ReportRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
) *AccountService {
	return &AccountService{
		userRepo:         userRepo,
		reportRepo:       reportRepo,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
	}
}

// RequestDeletion schedules the caller's account for removal after the
// grace period and returns the scheduled time
func (s *AccountService) RequestDeletion(identity models.Identity) (time.Time, error) {
	at := time.Now().Add(DeletionGracePeriod)
	if err := s.userRepo.ScheduleDeletion(identity.UserID, at); err != nil {
		return time.Time{}, apperrors.Internal(err)
	}
	return at, nil
}

// SweepDueUsers removes every user whose deletion schedule has elapsed.
// Each user is swept independently so one failure does not block the rest,
// and a pass with no due users is a no-op. Returns the number of users
// removed.
func (s *AccountService) SweepDueUsers(ctx context.Context, now time.Time) (int, error) {
	users, err := s.userRepo.GetUsersDueForDeletion(now)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, user := range users {
		if err := s.purgeUser(ctx, &user); err != nil {
			log.Printf("sweep: purge user %d: %v", user.ID, err)
			continue
		}
		log.Printf("sweep: deleted user %s", user.Email)
		deleted++
	}
	return deleted, nil
}

// purgeUser cascades the deletion, dependents before owner: comments go
// before the posts they sit on, everything the user owns goes before the
// user row, so no step leaves a reference pointing at something already
// removed.
func (s *AccountService) purgeUser(ctx context.Context, user *models.User) error {
	postIDs, err := s.postRepo.GetPostIDsByUserID(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.DeleteCommentsByPostIDs(postIDs); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteCommentsByUserID(user.ID); err != nil {
		return err
	}
	if _, err := s.postRepo.DeletePostsByUserID(ctx, user.ID); err != nil {
		return err
	}
	if err := s.postRepo.PullUserLikes(ctx, user.ID); err != nil {
		return err
	}
	if err := s.reportRepo.DeleteReportsByUserID(user.ID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteByUserID(user.ID); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(user.ID)
}
