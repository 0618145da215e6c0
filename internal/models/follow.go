package models

import (
	"time"
)

// Follow is a directed edge: Follower subscribes to Following.
// Composite key allows at most one edge per ordered pair; self-follows
// are rejected at the service layer.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"follower"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"following_id"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}
