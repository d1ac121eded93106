package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) ListByUserID(userID string) ([]model.Setting, error) {
	var settings []model.Setting
	if err := r.db.Where("user_id = ?", userID).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings failed: %w", err)
	}
	return settings, nil
}

func (r *SettingRepository) ReplaceByUserID(userID string, settings []model.Setting) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Setting{}).Error; err != nil {
			return fmt.Errorf("delete settings failed: %w", err)
		}
		if len(settings) == 0 {
			return nil
		}
		for i := range settings {
			settings[i].UserID = userID
		}
		if err := tx.Create(&settings).Error; err != nil {
			return fmt.Errorf("insert settings failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace settings failed: %w", err)
	}
	return nil
}
