package models

import (
	"time"
)

// PinReport is an append-only moderation flag, visible to admins only.
type PinReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PinID     uint      `gorm:"not null;index" json:"pin_id"`
	Pin       Pin       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"pin"`
	UserID    uint      `gorm:"not null;index" json:"user_id"` // reporter
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`
	Reason    string    `gorm:"size:200;not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
