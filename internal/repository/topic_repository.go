package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) ListByUserID(userID string) ([]model.Topic, error) {
	var topics []model.Topic
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("list topics failed: %w", err)
	}
	return topics, nil
}

// ReplaceByUserID discards every topic the user owns and inserts the given
// set in one transaction. Incoming user ids are overwritten with userID.
func (r *TopicRepository) ReplaceByUserID(userID string, topics []model.Topic) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Topic{}).Error; err != nil {
			return fmt.Errorf("delete topics failed: %w", err)
		}
		if len(topics) == 0 {
			return nil
		}
		for i := range topics {
			topics[i].UserID = userID
		}
		if err := tx.Create(&topics).Error; err != nil {
			return fmt.Errorf("insert topics failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace topics failed: %w", err)
	}
	return nil
}
