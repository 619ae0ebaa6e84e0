package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post categories
const (
	PostCategoryComplaint    = "complaint"
	PostCategoryAppreciation = "appreciation"
)

// PostLocation is the optional location snapshot embedded in a post
type PostLocation struct {
	Address string  `json:"address,omitempty" bson:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

// Post represents a feed entry stored in MongoDB. Likes is a set (no
// duplicate user ids); VisibilityScore moves only through the like and
// comment scoring rules, applied as $inc updates.
type Post struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          uint               `json:"user_id" bson:"user_id"`
	Anonymous       bool               `json:"anonymous,omitempty" bson:"anonymous,omitempty"` // snapshot of the source report's anonymous privacy
	Caption         string             `json:"caption" bson:"caption"`
	Media           []string           `json:"media,omitempty" bson:"media,omitempty"`
	Location        *PostLocation      `json:"location,omitempty" bson:"location,omitempty"`
	Category        string             `json:"category" bson:"category"`
	Hashtags        []string           `json:"hashtags,omitempty" bson:"hashtags,omitempty"`
	Likes           []uint             `json:"likes" bson:"likes"`
	Status          string             `json:"status" bson:"status"`
	VisibilityScore int                `json:"visibility_score" bson:"visibility_score"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// MarshalJSON masks the author reference of anonymous-sourced posts.
// The real owner stays in storage so moderation and account deletion
// still resolve it; only the serialized form hides it.
func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	a := alias(p)
	if p.Anonymous {
		a.UserID = 0
	}
	return json.Marshal(a)
}

// CreatePostRequest defines the request body for composing a post directly
type CreatePostRequest struct {
	Caption  string        `json:"caption" validate:"required,min=1,max=5000"`
	Media    []string      `json:"media,omitempty" validate:"omitempty,dive,required"`
	Location *PostLocation `json:"location,omitempty"`
	Category string        `json:"category" validate:"required,oneof=complaint appreciation"`
	Hashtags []string      `json:"hashtags,omitempty" validate:"omitempty,dive,required"`
}

// UpdatePostRequest defines the request body for an owner caption edit
type UpdatePostRequest struct {
	Caption  string   `json:"caption" validate:"required,min=1,max=5000"`
	Hashtags []string `json:"hashtags,omitempty" validate:"omitempty,dive,required"`
}

// UpdatePostStatusRequest defines the request body for the authority status path
type UpdatePostStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved"`
}
