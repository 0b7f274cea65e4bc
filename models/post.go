package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Caption   string    `gorm:"not null;type:varchar(128)" json:"caption"`
	ProfileID uint      `gorm:"not null;index" json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile Profile      `json:"profile" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Images  []PostImage  `json:"images" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Reports []PostReport `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type PostImage struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	Key    string `gorm:"not null" json:"-"`
	URL    string `gorm:"not null" json:"url"`
	IsMain bool   `gorm:"default:false" json:"is_main"`
}

// StagedPostImage holds an image uploaded ahead of post creation. Staged
// rows for a post UUID are promoted to PostImage rows inside the post
// creation transaction and the underlying objects moved to the final key.
type StagedPostImage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID  uint      `gorm:"not null;index" json:"profile_id"`
	PostUUID   string    `gorm:"not null;index;type:varchar(64)" json:"post_uuid"`
	Key        string    `gorm:"not null" json:"-"`
	URL        string    `gorm:"not null" json:"url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Profile Profile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}
