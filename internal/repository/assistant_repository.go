package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

type AssistantRepository struct {
	db *gorm.DB
}

func NewAssistantRepository(db *gorm.DB) *AssistantRepository {
	return &AssistantRepository{db: db}
}

func (r *AssistantRepository) ListByUserID(userID string) ([]model.Assistant, error) {
	var assistants []model.Assistant
	if err := r.db.Where("user_id = ?", userID).Find(&assistants).Error; err != nil {
		return nil, fmt.Errorf("list assistants failed: %w", err)
	}
	return assistants, nil
}

func (r *AssistantRepository) ReplaceByUserID(userID string, assistants []model.Assistant) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Assistant{}).Error; err != nil {
			return fmt.Errorf("delete assistants failed: %w", err)
		}
		if len(assistants) == 0 {
			return nil
		}
		for i := range assistants {
			assistants[i].UserID = userID
		}
		if err := tx.Create(&assistants).Error; err != nil {
			return fmt.Errorf("insert assistants failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace assistants failed: %w", err)
	}
	return nil
}
