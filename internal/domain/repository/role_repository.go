// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"stayhub/internal/domain/entity"
)

// ErrRoleNotFound is returned when a role name is absent from the catalog.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository provides read access to the seeded role catalog.
type RoleRepository interface {
	// FindByName retrieves a role catalog entry by its name.
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
