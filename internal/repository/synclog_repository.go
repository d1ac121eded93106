package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studiosync/internal/model"
)

type SyncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

func (r *SyncLogRepository) Create(entry *model.SyncLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create sync log failed: %w", err)
	}
	return nil
}

func (r *SyncLogRepository) ListByUserID(userID string, limit int) ([]model.SyncLog, error) {
	var entries []model.SyncLog
	q := r.db.Where("user_id = ?", userID).Order("synced_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list sync logs failed: %w", err)
	}
	return entries, nil
}
