package repositories

import (
	"github.com/0xSujith18/Talkit/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	DeleteComment(id uint) error
	DeleteCommentsByPostID(postID string) error
	DeleteCommentsByPostIDs(postIDs []string) error
	DeleteCommentsByUserID(userID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Unscoped().Delete(&models.Comment{}, id).Error
}

// DeleteCommentsByPostID removes every comment on a post. No comment may
// outlive its post.
func (r *PostgresCommentRepository) DeleteCommentsByPostID(postID string) error {
	return r.db.Unscoped().Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}

// DeleteCommentsByPostIDs removes comments across a set of posts
func (r *PostgresCommentRepository) DeleteCommentsByPostIDs(postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Unscoped().Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}

// DeleteCommentsByUserID removes every comment authored by a user
func (r *PostgresCommentRepository) DeleteCommentsByUserID(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}
