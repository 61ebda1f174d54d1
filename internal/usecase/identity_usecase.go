// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"stayhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a local account.
type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented to obtain a new
// access token.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// AuthOutput returns the issued token pair and the authenticated identity.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	Identity     *entity.Identity
}

// RefreshOutput returns the newly issued access token. Refreshing never
// rotates or invalidates the presented refresh token.
type RefreshOutput struct {
	AccessToken string
}

// IdentityUsecase defines the interface for local-account business
// operations. This is the contract the delivery layer depends on.
type IdentityUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	GetIdentity(ctx context.Context, id uuid.UUID) (*entity.Identity, error)
}
