package models

import "gorm.io/gorm"

// Verification request statuses
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// VerificationRequest represents a user's application for the verified
// badge (PostgreSQL). Approval flips User.IsVerified; the request row is
// retained either way as the audit trail.
type VerificationRequest struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index"`
	FullName     string `json:"full_name"`
	Category     string `json:"category" gorm:"size:50"`
	Organization string `json:"organization"`
	Position     string `json:"position"`
	IDProof      string `json:"id_proof"`
	Reason       string `json:"reason"`
	Status       string `json:"status" gorm:"size:20;default:pending;index"`
	ReviewedByID *uint  `json:"reviewed_by_id,omitempty"`
}

// RequestVerificationRequest defines the request body for applying for
// verification
type RequestVerificationRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=150"`
	Category     string `json:"category" validate:"required,max=50"`
	Organization string `json:"organization" validate:"required,max=200"`
	Position     string `json:"position" validate:"required,max=100"`
	IDProof      string `json:"id_proof" validate:"required"`
	Reason       string `json:"reason" validate:"required,max=2000"`
}
