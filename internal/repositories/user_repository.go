package repositories

import (
	"time"

	"github.com/0xSujith18/Talkit/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	SetVerified(id uint, verified bool) error
	ScheduleDeletion(id uint, at time.Time) error
	GetUsersDueForDeletion(now time.Time) ([]models.User, error)
	DeleteUser(id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by primary key
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves the user linked to a Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetVerified updates the user's verified badge
func (r *PostgresUserRepository) SetVerified(id uint, verified bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_verified", verified).Error
}

// ScheduleDeletion records the time after which the sweep may remove the user
func (r *PostgresUserRepository) ScheduleDeletion(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("deletion_scheduled_at", at).Error
}

// GetUsersDueForDeletion lists users whose deletion schedule has elapsed
func (r *PostgresUserRepository) GetUsersDueForDeletion(now time.Time) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("deletion_scheduled_at IS NOT NULL AND deletion_scheduled_at <= ?", now).Find(&users).Error
	return users, err
}

// DeleteUser removes the user row permanently
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Unscoped().Delete(&models.User{}, id).Error
}
