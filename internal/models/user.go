package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"not null" json:"phone"`
	Password     string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:'user'" json:"role"`
	TokenVersion int       `gorm:"not null;default:1" json:"-"`
	Profile      Profile   `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile holds the personal details a user can edit after signup.
type Profile struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.TokenVersion == 0 {
		u.TokenVersion = 1
	}
	return nil
}
