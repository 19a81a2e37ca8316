package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string         `gorm:"not null" json:"name"`
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string         `json:"-"`
	Role                Role           `gorm:"not null" json:"role"`
	Avatar              string         `json:"avatar,omitempty"`
	IsEmailVerified     bool           `gorm:"not null;default:false" json:"is_email_verified"`
	VerificationToken   string         `gorm:"index" json:"-"`
	ResetPasswordToken  string         `gorm:"index" json:"-"`
	ResetPasswordExpiry *time.Time     `json:"-"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// PublicUser is the profile projection returned by the API. Credential and
// token columns never leave the server.
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	Avatar          string    `json:"avatar,omitempty"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Avatar:          u.Avatar,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}
