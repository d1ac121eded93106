package model

import "time"

// SyncEvent is the message published after every successful replace.
type SyncEvent struct {
	UserID   string    `json:"user_id"`
	Kind     string    `json:"kind"`
	Count    int       `json:"count"`
	SyncedAt time.Time `json:"synced_at"`
}

// SyncLog is the persisted audit row for a SyncEvent.
type SyncLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"size:36;not null;index" json:"user_id"`
	Kind     string    `gorm:"size:32;not null" json:"kind"`
	Count    int       `gorm:"not null" json:"count"`
	SyncedAt time.Time `gorm:"not null" json:"synced_at"`
}
