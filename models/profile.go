package models

import (
	"time"
)

// PetType is admin managed reference data listing the kinds of pets
// a profile can be created for.
type PetType struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null;type:varchar(64)" json:"name"`
}

// Profile is a pet identity owned by a User. A user can hold several
// profiles and switches between them with the auth-profile-id header.
type Profile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"unique;not null;type:varchar(32)" json:"username"`
	Name      string    `gorm:"type:varchar(64);default:''" json:"name"`
	About     string    `gorm:"type:varchar(1000);default:''" json:"about"`
	Breed     string    `gorm:"type:varchar(64);default:''" json:"breed"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PetTypeID *uint     `json:"pet_type_id"`

	User    User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PetType *PetType      `json:"pet_type" gorm:"foreignKey:PetTypeID;constraint:OnDelete:SET NULL"`
	Image   *ProfileImage `json:"image" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

type ProfileImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex" json:"profile_id"`
	Key       string    `gorm:"not null" json:"-"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
