package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Report categories (closed set)
const (
	CategoryInfrastructure = "infrastructure"
	CategorySanitation     = "sanitation"
	CategoryTraffic        = "traffic"
	CategoryWater          = "water"
	CategoryElectricity    = "electricity"
	CategoryOther          = "other"
)

// Report privacy scopes. Privacy controls read visibility only.
const (
	PrivacyPublic          = "public"
	PrivacyAuthoritiesOnly = "authorities_only"
	PrivacyAnonymous       = "anonymous"
)

// Report workflow statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Report represents a citizen-filed civic issue (PostgreSQL).
// PublishedToFeed only ever goes false->true; FeedPostID is set exactly
// once, alongside that flip.
type Report struct {
	gorm.Model      `json:"-"`
	ID              uint           `json:"id" gorm:"primaryKey"`
	ReportID        string         `json:"report_id" gorm:"uniqueIndex"`
	UserID          uint           `json:"user_id" gorm:"index"`
	Category        string         `json:"category" gorm:"size:20;index:idx_reports_category_status"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Media           pq.StringArray `json:"media" gorm:"type:text[]"`
	Address         string         `json:"address"`
	Lat             float64        `json:"lat"`
	Lng             float64        `json:"lng"`
	MLA             string         `json:"mla,omitempty"`
	CivicBody       string         `json:"civic_body,omitempty"`
	Privacy         string         `json:"privacy" gorm:"size:20;default:public"`
	Status          string         `json:"status" gorm:"size:20;default:pending;index:idx_reports_category_status"`
	ActionProof     pq.StringArray `json:"action_proof,omitempty" gorm:"type:text[]"`
	PublishedToFeed bool           `json:"published_to_feed" gorm:"default:false"`
	FeedPostID      string         `json:"feed_post_id,omitempty"`
}

// CreateReportRequest defines the request body for filing a new report.
// Coordinates are pointers so a missing value fails validation instead of
// silently becoming zero.
type CreateReportRequest struct {
	Category    string   `json:"category" validate:"required,oneof=infrastructure sanitation traffic water electricity other"`
	Title       string   `json:"title" validate:"required,min=3,max=150"`
	Description string   `json:"description" validate:"required,min=3,max=5000"`
	Media       []string `json:"media" validate:"required,min=1,dive,required"`
	Address     string   `json:"address" validate:"required"`
	Lat         *float64 `json:"lat" validate:"required"`
	Lng         *float64 `json:"lng" validate:"required"`
	MLA         string   `json:"mla,omitempty"`
	CivicBody   string   `json:"civic_body,omitempty"`
	Privacy     string   `json:"privacy,omitempty" validate:"omitempty,oneof=public authorities_only anonymous"`
}

// UpdateReportStatusRequest defines the request body for the authority status workflow
type UpdateReportStatusRequest struct {
	Status      string   `json:"status" validate:"required,oneof=pending in_progress resolved"`
	ActionProof []string `json:"action_proof,omitempty" validate:"omitempty,dive,required"`
}

// ReportAnalytics is the authority-facing summary of report counts
type ReportAnalytics struct {
	Total      int64            `json:"total"`
	Pending    int64            `json:"pending"`
	InProgress int64            `json:"in_progress"`
	Resolved   int64            `json:"resolved"`
	ByCategory map[string]int64 `json:"by_category"`
}
