package models

import (
	"time"
)

// Expiry windows for emailed verification codes.
const (
	VerifyEmailTokenTTL   = 10 * time.Minute
	ResetPasswordTokenTTL = 15 * time.Minute
	EmailChangeTokenTTL   = 15 * time.Minute
)

// VerifyEmailToken is a short lived emailed code used to verify a user's
// email address. One token per user.
type VerifyEmailToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Token     string    `gorm:"not null;type:varchar(6)" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (t *VerifyEmailToken) Expired() bool {
	return time.Since(t.CreatedAt) > VerifyEmailTokenTTL
}

// ResetPasswordToken is a short lived emailed code used to reset a
// forgotten password.
type ResetPasswordToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Token     string    `gorm:"not null;type:varchar(6)" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (t *ResetPasswordToken) Expired() bool {
	return time.Since(t.CreatedAt) > ResetPasswordTokenTTL
}

// PendingEmailChange records a requested email change awaiting
// verification of the new address.
type PendingEmailChange struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	NewEmail          string    `gorm:"not null" json:"new_email"`
	VerificationToken string    `gorm:"not null;type:varchar(6)" json:"-"`
	CreatedAt         time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (p *PendingEmailChange) Expired() bool {
	return time.Since(p.CreatedAt) > EmailChangeTokenTTL
}
