package models

import (
	"time"
)

type Board struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"size:500" json:"description"`
	CoverImagePath string    `json:"cover_image_path"` // set from the first pin saved into the board
	IsPrivate      bool      `gorm:"default:false" json:"is_private"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	PinBoards []PinBoard `json:"pin_boards"`

	PinCount int64 `gorm:"-" json:"pin_count"`
}
