package models

import (
	"time"
)

// Follow is a directed edge: FollowedBy follows Followed. At most one
// edge exists per ordered pair. Self follows are rejected in the
// handlers, not by the schema.
type Follow struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowedID   uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followed_id"`
	FollowedByID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followed_by_id"`
	CreatedAt    time.Time `json:"created_at"`

	Followed   Profile `json:"followed" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	FollowedBy Profile `json:"followed_by" gorm:"foreignKey:FollowedByID;constraint:OnDelete:CASCADE"`
}
