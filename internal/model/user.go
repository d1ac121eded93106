package model

import "time"

type User struct {
	ID           string     `gorm:"size:36;primaryKey" json:"id"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string     `gorm:"size:100;not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	DisplayName  string     `gorm:"size:100" json:"displayName,omitempty"`
	Avatar       string     `gorm:"type:text" json:"avatar,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}
