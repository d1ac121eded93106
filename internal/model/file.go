package model

import "time"

type File struct {
	ID         string    `gorm:"size:100;primaryKey" json:"id"`
	UserID     string    `gorm:"size:36;primaryKey;index" json:"userId"`
	Name       string    `gorm:"size:500;not null" json:"name"`
	OriginName string    `gorm:"size:500" json:"originName,omitempty"`
	Path       string    `gorm:"type:text" json:"path,omitempty"`
	Size       int64     `gorm:"not null;default:0" json:"size"`
	Ext        string    `gorm:"size:50" json:"ext,omitempty"`
	Type       string    `gorm:"size:100" json:"type,omitempty"`
	Content    string    `gorm:"type:text" json:"content,omitempty"`
	Count      int       `gorm:"not null;default:0" json:"count"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
