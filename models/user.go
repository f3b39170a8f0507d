package models

import "time"

// User roles.
const (
	RoleCustomer = "customer"
	RoleArtist   = "artist"
	RoleAdmin    = "admin"
)

// User is a platform identity. Artist identities are only ever created by the
// approval migration; customers register directly.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Caller identifies the authenticated actor behind a request. Ownership checks
// compare Caller.ID against the target record; admins may override ownership
// but never state-machine legality.
type Caller struct {
	ID   string
	Role string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }
