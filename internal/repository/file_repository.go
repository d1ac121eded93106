package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) ListByUserID(userID string) ([]model.File, error) {
	var files []model.File
	if err := r.db.Where("user_id = ?", userID).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list files failed: %w", err)
	}
	return files, nil
}

func (r *FileRepository) ReplaceByUserID(userID string, files []model.File) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.File{}).Error; err != nil {
			return fmt.Errorf("delete files failed: %w", err)
		}
		if len(files) == 0 {
			return nil
		}
		for i := range files {
			files[i].UserID = userID
		}
		if err := tx.Create(&files).Error; err != nil {
			return fmt.Errorf("insert files failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace files failed: %w", err)
	}
	return nil
}
