package models

import (
	"time"
)

type RefreshToken struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Token          string    `gorm:"unique;not null" json:"token"`
	ExpirationDate time.Time `gorm:"not null" json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
}
