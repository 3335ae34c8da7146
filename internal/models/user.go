package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user account can hold. Anything absent or unknown is treated as RoleUser.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the three enumerated values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"size:255" json:"name"`
	PhotoURL     string         `gorm:"size:512" json:"photoURL"`
	Role         string         `gorm:"size:20;default:'user'" json:"role"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	GoogleUserID *string        `gorm:"size:255;index" json:"-"`
	LastLogin    time.Time      `json:"lastLogin"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectiveRole returns the stored role, defaulting to user for records
// that predate role assignment.
func (u *User) EffectiveRole() string {
	if ValidRole(u.Role) {
		return u.Role
	}
	return RoleUser
}
