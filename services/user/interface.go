package user

import (
	"context"

	"artisly/models"
)

// RegisterInput is the validated payload for customer registration.
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResult carries the signed-in identity and its bearer token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService resolves and manages platform identities. Artist identities are
// created only by the approval migration.
type UserService interface {
	// RegisterCustomer creates a customer identity and signs it in.
	RegisterCustomer(ctx context.Context, input RegisterInput) (*AuthResult, error)
	// SignIn authenticates any identity by email and password.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	// GetByID retrieves a user identity.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateFCMToken stores the device push token for a user.
	UpdateFCMToken(ctx context.Context, userID, token string) error
}
