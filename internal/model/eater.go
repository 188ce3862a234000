package model

import "time"

// Eater represents a diner account as stored in the `eaters` table.
// An eater can host reservations, attend reservations created by
// other eaters, and carry a set of dietary restrictions that the
// availability search must satisfy.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name of the eater.
//  Email        – unique email address, also the login identifier.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Eater struct {
	ID           uint64    // eaters.id
	Name         string    // eaters.name
	Email        string    // eaters.email
	PasswordHash string    // eaters.password_hash
	CreatedAt    time.Time // eaters.created_at
	UpdatedAt    time.Time // eaters.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to an eater; only the SHA-256 hash of the
// raw token value is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	EaterID   uint64     // refresh_tokens.eater_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
