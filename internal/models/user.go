package models

import (
	"time"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	IsAdmin           bool       `gorm:"default:false" json:"is_admin"`
	Bio               string     `gorm:"size:500" json:"bio"`
	ProfileImagePath  string     `json:"profile_image_path"`
	EmailConfirmed    bool       `gorm:"default:false" json:"email_confirmed"`
	ConfirmationToken string     `gorm:"index" json:"-"`
	ResetToken        string     `gorm:"index" json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	// No DeletedAt: account removal is a hard delete with explicit cascade
}
