package models

import (
	"time"
)

type User struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Email           string    `gorm:"unique;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	IsStaff         bool      `gorm:"default:false" json:"is_staff"`
	IsEmailVerified bool      `gorm:"default:false" json:"is_email_verified"`

	Profiles      []Profile      `json:"profiles" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
