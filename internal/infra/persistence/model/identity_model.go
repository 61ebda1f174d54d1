// Package model defines the GORM persistence models mirroring the
// identity store tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleModel mirrors the 'roles' table. The catalog is seeded at deployment
// time; identities reference a single row.
type RoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// IdentityModel mirrors the 'identities' table. Email and username are
// unique; external_id is unique among non-null values so local-only
// accounts can coexist without a federated credential.
type IdentityModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name         string     `gorm:"type:varchar(100)"`
	AvatarURL    string     `gorm:"type:varchar(512)"`
	ExternalID   *string    `gorm:"type:varchar(255);uniqueIndex"`
	Provider     string     `gorm:"type:varchar(32);not null"`
	PasswordHash string     `gorm:"type:varchar(255)"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null"`
	Role         *RoleModel `gorm:"foreignKey:RoleID"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}
