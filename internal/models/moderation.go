package models

import "gorm.io/gorm"

// Moderation target types
const (
	ModerationTargetPost    = "post"
	ModerationTargetComment = "comment"
	ModerationTargetUser    = "user"
)

// Moderation review statuses
const (
	ModerationPending     = "pending"
	ModerationReviewed    = "reviewed"
	ModerationActionTaken = "action_taken"
	ModerationDismissed   = "dismissed"
)

// ModerationReport represents a report filed against content (PostgreSQL).
// Rows are retained as an audit trail even after action is taken on the target.
type ModerationReport struct {
	gorm.Model
	ReporterID   uint   `json:"reporter_id" gorm:"index"`
	TargetType   string `json:"target_type" gorm:"size:20"`
	TargetID     string `json:"target_id"`
	Reason       string `json:"reason" gorm:"size:30"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status" gorm:"size:20;default:pending;index"`
	ReviewedByID *uint  `json:"reviewed_by_id,omitempty"`
	Action       string `json:"action,omitempty"`
}

// FileModerationReportRequest defines the request body for reporting content
type FileModerationReportRequest struct {
	TargetType  string `json:"target_type" validate:"required,oneof=post comment user"`
	TargetID    string `json:"target_id" validate:"required"`
	Reason      string `json:"reason" validate:"required,oneof=spam harassment inappropriate misinformation other"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// ReviewModerationReportRequest defines the request body for an admin review
type ReviewModerationReportRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed action_taken dismissed"`
	Action string `json:"action,omitempty" validate:"omitempty,max=500"`
}
