package model

import "time"

type Assistant struct {
	ID          string    `gorm:"size:100;primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;primaryKey;index" json:"userId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Config      JSONText  `gorm:"type:text;not null" json:"config"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
