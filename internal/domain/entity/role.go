// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoleName represents the type of role an identity can have in the system.
// The three roles are totally ordered by privilege: ADMIN > HOST > USER.
type RoleName string

const (
	// RoleUser indicates a regular guest account.
	RoleUser RoleName = "USER"
	// RoleHost indicates an account that can manage hotel listings.
	RoleHost RoleName = "HOST"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin RoleName = "ADMIN"
)

// roleLevels is the fixed privilege order. Roles missing from this table
// permit nothing.
var roleLevels = map[RoleName]int{
	RoleUser:  1,
	RoleHost:  2,
	RoleAdmin: 3,
}

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// IsValid checks if the RoleName is one of the predefined roles.
func (r RoleName) IsValid() bool {
	_, ok := roleLevels[r]

	return ok
}

// Permits reports whether an actor holding this role satisfies a requirement
// for the given role. Unknown roles on either side permit nothing.
func (r RoleName) Permits(required RoleName) bool {
	actingLevel, ok := roleLevels[r]
	if !ok {
		return false
	}

	requiredLevel, ok := roleLevels[required]
	if !ok {
		return false
	}

	return actingLevel >= requiredLevel
}

// Scope returns the authority string embedded in access tokens for this role.
func (r RoleName) Scope() string {
	return "ROLE_" + string(r)
}

// ParseRoleName safely parses a string into a RoleName.
func ParseRoleName(s string) (RoleName, bool) {
	role := RoleName(s)

	return role, role.IsValid()
}

// RoleNameFromScope reverses Scope: it extracts the role name from an access
// token authority string. Unknown scopes yield ok == false.
func RoleNameFromScope(scope string) (RoleName, bool) {
	const prefix = "ROLE_"
	if len(scope) <= len(prefix) || scope[:len(prefix)] != prefix {
		return "", false
	}

	return ParseRoleName(scope[len(prefix):])
}

// Role is an entry in the persisted role catalog. Identities reference a
// single catalog row; the catalog is seeded at deployment time.
type Role struct {
	ID        uuid.UUID // Unique ID of the catalog row.
	Name      RoleName  // One of USER, HOST, ADMIN.
	CreatedAt time.Time // Timestamp of when the role was seeded.
}
