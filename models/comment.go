package models

import (
	"time"
)

type Comment struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Text             string    `gorm:"not null;type:varchar(1000)" json:"text"`
	ProfileID        uint      `gorm:"not null;index" json:"profile_id"`
	PostID           uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt        time.Time `json:"created_at"`
	ParentCommentID  *uint     `gorm:"index" json:"parent_comment_id"`
	ReplyToCommentID *uint     `json:"reply_to_comment_id"`

	Profile        Profile  `json:"profile" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Post           Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	ParentComment  *Comment `json:"-" gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE"`
	ReplyToComment *Comment `json:"-" gorm:"foreignKey:ReplyToCommentID;constraint:OnDelete:CASCADE"`
}

type CommentLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_comment_like_profile_comment" json:"profile_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_profile_comment" json:"comment_id"`
	LikedAt   time.Time `gorm:"autoCreateTime" json:"liked_at"`

	Profile Profile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Comment Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}
