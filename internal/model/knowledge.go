package model

import "time"

type KnowledgeBase struct {
	ID          string    `gorm:"size:100;primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;primaryKey;index" json:"userId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Config      JSONText  `gorm:"type:text;not null" json:"config"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// KnowledgeNote references its base loosely: BaseID is not a foreign key and
// may point at a base that no longer exists.
type KnowledgeNote struct {
	ID        string    `gorm:"size:100;primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;primaryKey;index" json:"userId"`
	BaseID    string    `gorm:"size:100;index" json:"baseId,omitempty"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
