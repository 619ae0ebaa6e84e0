package models

import "gorm.io/gorm"

// Comment represents a comment on a feed post (PostgreSQL).
// IsAuthorityResponse is frozen from the author's role at creation time
// and never re-derived afterwards.
type Comment struct {
	gorm.Model
	PostID              string `json:"post_id" gorm:"index"` // Mongo post ObjectID as hex string
	UserID              uint   `json:"user_id" gorm:"index"`
	Text                string `json:"text"`
	IsAuthorityResponse bool   `json:"is_authority_response" gorm:"default:false"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
