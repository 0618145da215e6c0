package models

import (
	"time"
)

// PinLike records at most one like per user per pin.
type PinLike struct {
	PinID     uint      `gorm:"primaryKey;autoIncrement:false" json:"pin_id"`
	Pin       Pin       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"pin"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
