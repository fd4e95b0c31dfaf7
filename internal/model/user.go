package model

import "time"

// Roles stored in users.role.  ADMIN sees every lab; TECH is restricted
// to the labs listed in lab_assignments.
const (
    RoleAdmin = "ADMIN"
    RoleTech  = "TECH"
)

// User is an authenticated caller of the API.  Passwords are stored as
// bcrypt hashes; sessions are issued as short-lived JWT access tokens
// plus hashed refresh tokens.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    FullName     string    // users.full_name
    Role         string    // users.role (ADMIN|TECH)
    CreatedAt    time.Time // users.created_at
}

// RefreshToken is a long-lived session token.  Only the SHA-256 hash of
// the raw token is persisted.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
