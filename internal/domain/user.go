package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
// Users are created on first successful external-identity sign-in;
// the role defaults to USER and is changed only out-of-band.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	AvatarURL *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may pass the admin gate.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// NewUserParams carries the fields needed to create a user, including
// credential columns that never appear on User itself.
type NewUserParams struct {
	Email        string
	Username     string
	AvatarURL    *string
	GoogleID     *string
	PasswordHash *string
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
