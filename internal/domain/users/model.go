package users

import (
	"time"

	"gorm.io/datatypes"

	"freelancer-access/internal/domain/access"
)

type User struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Login        string  `gorm:"not null;uniqueIndex:idx_users_login" json:"login"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"auth_provider"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`

	// Role slugs, WordPress style: a user can carry several.
	Roles datatypes.JSONSlice[string] `json:"roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessUser is the engine's view of this account.
func (u User) AccessUser() access.User {
	return access.User{ID: u.ID, Roles: u.Roles}
}
