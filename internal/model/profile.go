package model

import (
	"time"
)

// Role gates what a profile may do. Viewers read, editors write, admins
// additionally delete and manage invites.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanWrite reports whether the role may create or update records.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleEditor
}

// Profile is an authenticated user of the treasury.
type Profile struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity threaded explicitly through every
// service call. Handlers build it from the session token; services never
// read ambient request state.
type Actor struct {
	ProfileID int64
	Role      Role
}

// Invite lets an admin onboard a new profile. The token is handed to the
// invitee out of band and redeemed exactly once.
type Invite struct {
	ID        int64      `json:"id"`
	Token     string     `json:"token"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy int64      `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
