// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"stayhub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for identity persistence. The application layer
// handles outcomes through these sentinels without depending on
// database-specific errors.
var (
	// ErrIdentityNotFound is returned when no identity matches the lookup key.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrDuplicateIdentity is returned when a save would violate the unique
	// constraints on email or username. During federated signup this is the
	// concurrent-creation signal, not a generic failure.
	ErrDuplicateIdentity = errors.New("identity already exists")
)

// IdentityRepository defines the standard operations for identity persistence.
// All operations honor the caller's context; a store timeout or outage
// surfaces as a wrapped store error, never as a domain conflict.
type IdentityRepository interface {
	// FindByID retrieves a single identity by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByEmail retrieves a single identity by its lowercased email key.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// FindByUsername retrieves a single identity by its unique handle.
	FindByUsername(ctx context.Context, username string) (*entity.Identity, error)

	// Create persists a new identity. The store's unique constraints on
	// email and username are the sole arbiter of uniqueness.
	Create(ctx context.Context, identity *entity.Identity) error

	// Update modifies an existing identity.
	Update(ctx context.Context, identity *entity.Identity) error
}
