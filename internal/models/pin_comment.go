package models

import (
	"time"
)

type PinComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PinID     uint      `gorm:"not null;index" json:"pin_id"`
	Pin       Pin       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"pin"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	// Append-only: no UpdatedAt, comments are never edited
}
