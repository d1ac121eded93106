package model

import "time"

// Setting is one settings entry keyed by the client-side setting id.
type Setting struct {
	ID        string    `gorm:"size:100;primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;primaryKey;index" json:"userId"`
	Value     JSONText  `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
