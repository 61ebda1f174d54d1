// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider describes how an identity currently authenticates.
type Provider string

const (
	// ProviderLocal indicates a password-only account.
	ProviderLocal Provider = "local"
	// ProviderFederated indicates an account created through a federated login.
	ProviderFederated Provider = "federated"
	// ProviderFederatedLinked indicates an account that started as a local
	// password account and later had a federated credential attached.
	ProviderFederatedLinked Provider = "federated-linked"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsFederated reports whether the provider carries a federated credential.
func (p Provider) IsFederated() bool {
	return p == ProviderFederated || p == ProviderFederatedLinked
}

// Identity is the authenticated user record of the platform. Email is the
// case-insensitive key that correlates local and federated logins; at most
// one federated provider is supported per identity.
type Identity struct {
	ID           uuid.UUID // Global unique identifier for the identity.
	Email        string    // Unique login key, stored lowercased.
	Username     string    // Unique handle; auto-generated for federated signups.
	Name         string    // Display name; may be backfilled from a federated profile.
	AvatarURL    string    // Optional profile picture URL from a federated provider.
	ExternalID   string    // Federated provider subject id; empty for local-only accounts.
	Provider     Provider  // How this identity currently authenticates.
	PasswordHash string    // bcrypt hash; empty for federated-only accounts.
	Role         *Role     // Single role reference driving authorization scope.
	Active       bool      // Inactive identities fail authentication.
	CreatedAt    time.Time // Timestamp of account creation.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// RoleName returns the identity's role name, or the empty value when no
// role is attached.
func (i *Identity) RoleName() RoleName {
	if i.Role == nil {
		return ""
	}

	return i.Role.Name
}

// NormalizeEmail lowercases and trims an email so it can serve as the
// correlation key between login paths.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
