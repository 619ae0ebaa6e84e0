package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/permissions"
	"github.com/0xSujith18/Talkit/internal/repositories"
)

// Scoring weights. Comments are costlier interactions than likes and are
// weighted higher so discussed posts surface in trending.
const (
	likeScoreDelta    = 1
	commentScoreDelta = 2
)

// FeedService owns the social side of the lifecycle: posts, the likes set,
// comments, and the visibility score
type FeedService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	notifier    Notifier
}

// NewFeedService creates a new FeedService
func NewFeedService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, notifier Notifier) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

func lowercaseTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = strings.ToLower(tag)
	}
	return out
}

// CreatePost composes a post directly, outside the report workflow
func (s *FeedService) CreatePost(ctx context.Context, identity models.Identity, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:   identity.UserID,
		Caption:  req.Caption,
		Media:    req.Media,
		Location: req.Location,
		Category: req.Category,
		Hashtags: lowercaseTags(req.Hashtags),
		Status:   models.StatusPending,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "create post", err)
	}
	return post, nil
}

// GetPost retrieves a single post
func (s *FeedService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, apperrors.Internal(err)
	}
	return post, nil
}

// Feed returns a recency-ordered page of posts with totals
func (s *FeedService) Feed(ctx context.Context, page, limit int64) ([]models.Post, int64, int64, error) {
	posts, total, err := s.postRepo.GetFeed(ctx, page, limit)
	if err != nil {
		return nil, 0, 0, apperrors.Internal(err)
	}
	pages := (total + limit - 1) / limit
	return posts, total, pages, nil
}

// Trending returns posts ordered by visibility score
func (s *FeedService) Trending(ctx context.Context, limit int64) ([]models.Post, error) {
	posts, err := s.postRepo.GetTrending(ctx, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return posts, nil
}

// ByHashtag returns posts carrying the tag; lookup is case-insensitive
// because tags are stored lowercased
func (s *FeedService) ByHashtag(ctx context.Context, tag string) ([]models.Post, error) {
	posts, err := s.postRepo.GetPostsByHashtag(ctx, strings.ToLower(tag))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return posts, nil
}

// ByUser returns posts authored by the given user
func (s *FeedService) ByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	posts, err := s.postRepo.GetPostsByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return posts, nil
}

// ToggleLike flips the caller's like on a post. Adding notifies the author
// (unless the caller is the author); removing notifies no one. The flip and
// score adjustment happen atomically at the storage layer.
func (s *FeedService) ToggleLike(ctx context.Context, identity models.Identity, postID string) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, postID, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, apperrors.Internal(err)
	}

	if liked && post.UserID != identity.UserID {
		s.notifier.Notify(&models.Notification{
			RecipientID: post.UserID,
			Type:        models.NotificationLike,
			ActorID:     identity.UserID,
			PostID:      postID,
			Message:     fmt.Sprintf("%s liked your post", identity.Name),
		})
	}

	return s.GetPost(ctx, postID)
}

// Comment adds a comment to a post, bumps the visibility score, and
// notifies the author. Whether the comment counts as an authority response
// is decided once, from the commenter's role right now.
func (s *FeedService) Comment(ctx context.Context, identity models.Identity, postID, text string) (*models.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:              postID,
		UserID:              identity.UserID,
		Text:                text,
		IsAuthorityResponse: identity.Role == models.RoleAuthority,
	}
	if err := s.commentRepo.CreateComment(comment); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "create comment", err)
	}

	if err := s.postRepo.AddVisibilityScore(ctx, postID, commentScoreDelta); err != nil {
		// Roll the comment back so the call leaves nothing behind.
		if delErr := s.commentRepo.DeleteComment(comment.ID); delErr != nil {
			log.Printf("comment: compensate comment %d: %v", comment.ID, delErr)
		}
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "bump visibility score", err)
	}

	if post.UserID != identity.UserID {
		notificationType := models.NotificationComment
		if comment.IsAuthorityResponse {
			notificationType = models.NotificationAuthorityResponse
		}
		s.notifier.Notify(&models.Notification{
			RecipientID: post.UserID,
			Type:        notificationType,
			ActorID:     identity.UserID,
			PostID:      postID,
			Message:     fmt.Sprintf("%s commented on your post", identity.Name),
		})
	}

	return comment, nil
}

// Comments lists a post's comments, newest first
func (s *FeedService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetCommentsByPostID(postID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return comments, nil
}

// EditCaption lets the post author rewrite the caption and hashtags.
// Hashtags are lowercased before storage.
func (s *FeedService) EditCaption(ctx context.Context, identity models.Identity, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != identity.UserID {
		return nil, apperrors.AccessDenied("only the post author may edit")
	}

	if err := s.postRepo.UpdateCaption(ctx, postID, req.Caption, lowercaseTags(req.Hashtags)); err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.GetPost(ctx, postID)
}

// DeletePost removes the author's post and all of its comments
func (s *FeedService) DeletePost(ctx context.Context, identity models.Identity, postID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != identity.UserID {
		return apperrors.AccessDenied("only the post author may delete")
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return apperrors.Internal(err)
	}
	if err := s.commentRepo.DeleteCommentsByPostID(postID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "cascade comments", err)
	}
	return nil
}

// UpdateStatus is the post's own status path, independent of the report
// workflow a published post originated from
func (s *FeedService) UpdateStatus(ctx context.Context, identity models.Identity, postID, status string) (*models.Post, error) {
	if !permissions.Allowed(identity.Role, permissions.UpdatePostStatus) {
		return nil, apperrors.AccessDenied("authority access required")
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateStatus(ctx, postID, status); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.notifier.Notify(&models.Notification{
		RecipientID: post.UserID,
		Type:        models.NotificationStatusUpdate,
		ActorID:     identity.UserID,
		PostID:      postID,
		Message:     fmt.Sprintf("Your post status updated to %s", status),
	})

	return s.GetPost(ctx, postID)
}
