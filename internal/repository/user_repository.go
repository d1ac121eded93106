package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(id string, at time.Time) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at).Error; err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(id string, displayName, avatar *string) error {
	updates := map[string]interface{}{}
	if displayName != nil {
		updates["display_name"] = *displayName
	}
	if avatar != nil {
		updates["avatar"] = *avatar
	}
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update profile failed: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(id, passwordHash string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error; err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	return nil
}
