package models

import (
	"time"
)

// PinBoard links a pin to a board. Composite key keeps a pin from being
// saved into the same board twice.
type PinBoard struct {
	PinID     uint      `gorm:"primaryKey;autoIncrement:false" json:"pin_id"`
	Pin       Pin       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"pin"`
	BoardID   uint      `gorm:"primaryKey;autoIncrement:false" json:"board_id"`
	Board     Board     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"board"`
	CreatedAt time.Time `json:"created_at"`
}
