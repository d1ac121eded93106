package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

// KnowledgeRepository owns both bases and notes: the two are replaced as one
// unit so notes never outlive the base set they were written against.
type KnowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

func (r *KnowledgeRepository) ListBasesByUserID(userID string) ([]model.KnowledgeBase, error) {
	var bases []model.KnowledgeBase
	if err := r.db.Where("user_id = ?", userID).Find(&bases).Error; err != nil {
		return nil, fmt.Errorf("list knowledge bases failed: %w", err)
	}
	return bases, nil
}

func (r *KnowledgeRepository) ListNotesByUserID(userID string) ([]model.KnowledgeNote, error) {
	var notes []model.KnowledgeNote
	if err := r.db.Where("user_id = ?", userID).Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list knowledge notes failed: %w", err)
	}
	return notes, nil
}

func (r *KnowledgeRepository) ReplaceByUserID(userID string, bases []model.KnowledgeBase, notes []model.KnowledgeNote) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.KnowledgeBase{}).Error; err != nil {
			return fmt.Errorf("delete knowledge bases failed: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.KnowledgeNote{}).Error; err != nil {
			return fmt.Errorf("delete knowledge notes failed: %w", err)
		}
		if len(bases) > 0 {
			for i := range bases {
				bases[i].UserID = userID
			}
			if err := tx.Create(&bases).Error; err != nil {
				return fmt.Errorf("insert knowledge bases failed: %w", err)
			}
		}
		if len(notes) > 0 {
			for i := range notes {
				notes[i].UserID = userID
			}
			if err := tx.Create(&notes).Error; err != nil {
				return fmt.Errorf("insert knowledge notes failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace knowledge failed: %w", err)
	}
	return nil
}
