package model

import "time"

// Role names the privilege level carried in access tokens.
type Role string

const (
    RoleAdmin    Role = "ADMIN"
    RoleLecturer Role = "LECTURER"
    RoleUser     Role = "USER"
)

// ParseRole normalises a stored role string, falling back to RoleUser for
// unknown values.
func ParseRole(s string) Role {
    switch Role(s) {
    case RoleAdmin, RoleLecturer:
        return Role(s)
    }
    return RoleUser
}

// Privileged reports whether the role gets the extended booking horizon.
func (r Role) Privileged() bool { return r == RoleAdmin || r == RoleLecturer }

// User represents an account as stored in the `users` table.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Name         – display name shown on reservations.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN, LECTURER or USER.
//  IsActive     – inactive accounts cannot log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    Name         string    // users.name
    PasswordHash string    // users.password_hash
    Role         Role      // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token is stored.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
