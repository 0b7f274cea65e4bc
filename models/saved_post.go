package models

import (
	"time"
)

type SavedPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_saved_profile_post" json:"profile_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_saved_profile_post" json:"post_id"`
	SavedAt   time.Time `gorm:"autoCreateTime" json:"saved_at"`

	Profile Profile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Post    Post    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
