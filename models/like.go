package models

import (
	"time"
)

type Like struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_like_profile_post" json:"profile_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_profile_post" json:"post_id"`
	LikedAt   time.Time `gorm:"autoCreateTime" json:"liked_at"`

	Profile Profile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Post    Post    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
