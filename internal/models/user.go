package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold. Role gates authority/admin operations, it never
// affects what a user can read about their own records.
const (
	RoleCitizen   = "citizen"
	RoleAuthority = "authority"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model          `json:"-"`
	ID                  uint       `json:"id" gorm:"primaryKey"`
	FirebaseUID         string     `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	Username            string     `json:"username" gorm:"uniqueIndex"`
	Name                string     `json:"name"`
	Email               string     `json:"email" gorm:"uniqueIndex"`
	Phone               string     `json:"phone,omitempty"`
	Bio                 string     `json:"bio,omitempty"`
	Avatar              string     `json:"avatar,omitempty"`
	Location            string     `json:"location,omitempty"`
	Role                string     `json:"role" gorm:"size:20;default:citizen"`
	IsVerified          bool       `json:"is_verified" gorm:"default:false"`
	DeletionScheduledAt *time.Time `json:"deletion_scheduled_at,omitempty"`
}

// Identity is the resolved caller context stored by the auth middleware.
// Everything downstream reads it instead of re-verifying tokens or rows.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// UserCompact is the author shape embedded in enriched responses
type UserCompact struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	Avatar     string `json:"avatar,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		Avatar:     u.Avatar,
	}
}

// RegisterUserRequest links a Firebase-authenticated caller to an application user row
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}
