package model

import "time"

// Topic is one conversation; its messages travel as a serialized list.
type Topic struct {
	ID          string    `gorm:"size:36;primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;primaryKey;index" json:"userId"`
	Title       string    `gorm:"size:500" json:"title,omitempty"`
	Messages    JSONText  `gorm:"type:text;not null" json:"messages"`
	AssistantID string    `gorm:"size:100" json:"assistantId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `gorm:"index" json:"updatedAt"`
}
