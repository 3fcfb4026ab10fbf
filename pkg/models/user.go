package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Auth providers.
const (
	ProviderPassword = "password"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DisplayName string    `bun:",nullzero" json:"display_name"`
	Email       string    `bun:",nullzero" json:"email"`
	// Never expose credentials or reset state.
	PasswordHash        string     `json:"-"`
	Provider            string     `bun:",nullzero" json:"provider"`
	AvatarPath          *string    `json:"-"`
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	HasAvatar bool `bun:"-" json:"has_avatar"`
}

// Profile is the public view of a user, safe to return to any authenticated
// viewer (follower lists, user search, booklist owners).
type Profile struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	HasAvatar   bool   `json:"has_avatar"`
}

func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		HasAvatar:   u.AvatarPath != nil,
	}
}
