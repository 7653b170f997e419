// Package models holds the wire and storage types shared by the gateway
// server and the client stores: entities, enums and tagged patch structs.
package models

import (
	"time"

	"github.com/gestorapp/gestor/internal/patch"
)

// UserRole gates access to privileged surfaces (vault, reorder, secretary
// fields). The HTTP layer is the enforcement boundary; any client-side
// gating is display convenience only.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the authenticated account plus its profile row.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may see privileged surfaces.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ProfilePatch updates the mutable profile fields.
type ProfilePatch struct {
	FullName  patch.Field[string] `json:"fullName,omitzero"`
	AvatarURL patch.Field[string] `json:"avatarUrl,omitzero"`
}

// RefreshToken is an opaque server-side session token.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// TokenPair is returned on sign-in and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
