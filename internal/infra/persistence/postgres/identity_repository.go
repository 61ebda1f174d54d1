package postgres

import (
	"context"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/repository"
	"stayhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityRepository implements the domain.IdentityRepository interface using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindByID retrieves a single identity by its unique ID, preloading the role.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("Role").
		Where("id = ?", id).
		First(&identityM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find identity by id")
	}

	return toIdentityDomain(&identityM), nil
}

// FindByEmail retrieves a single identity by its lowercased email key.
func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&identityM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find identity by email")
	}

	return toIdentityDomain(&identityM), nil
}

// FindByUsername retrieves a single identity by its unique handle.
func (repo *identityRepository) FindByUsername(ctx context.Context, username string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("Role").
		Where("username = ?", username).
		First(&identityM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find identity by username")
	}

	return toIdentityDomain(&identityM), nil
}

// Create persists a new identity. Unique-constraint violations surface as
// repository.ErrDuplicateIdentity so the application layer can treat a
// concurrent signup as a lookup race rather than a failure.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Omit("Role").Create(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateIdentity
		}
		if isNotNullConstraintViolation(err) || isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("identity row incomplete")
		}

		return domainerrors.NewStoreExecuteError(err, "failed to create identity")
	}

	identity.ID = identityM.ID
	identity.CreatedAt = identityM.CreatedAt
	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

// Update modifies an existing identity row.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Omit("Role").Save(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateIdentity
		}

		return domainerrors.NewStoreExecuteError(err, "failed to update identity")
	}

	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

// toIdentityDomain maps the persistence model back to a pure domain entity.
func toIdentityDomain(m *model.IdentityModel) *entity.Identity {
	identity := &entity.Identity{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		Name:         m.Name,
		AvatarURL:    m.AvatarURL,
		Provider:     entity.Provider(m.Provider),
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	if m.ExternalID != nil {
		identity.ExternalID = *m.ExternalID
	}

	if m.Role != nil {
		identity.Role = &entity.Role{
			ID:        m.Role.ID,
			Name:      entity.RoleName(m.Role.Name),
			CreatedAt: m.Role.CreatedAt,
		}
	}

	return identity
}

// fromIdentityDomain maps a domain entity to the persistence model.
// An empty external id is stored as NULL so the unique index only applies
// to rows that actually carry a federated credential.
func fromIdentityDomain(identity *entity.Identity) *model.IdentityModel {
	m := &model.IdentityModel{
		ID:           identity.ID,
		Email:        entity.NormalizeEmail(identity.Email),
		Username:     identity.Username,
		Name:         identity.Name,
		AvatarURL:    identity.AvatarURL,
		Provider:     identity.Provider.String(),
		PasswordHash: identity.PasswordHash,
		Active:       identity.Active,
		CreatedAt:    identity.CreatedAt,
		UpdatedAt:    identity.UpdatedAt,
	}

	if identity.ExternalID != "" {
		externalID := identity.ExternalID
		m.ExternalID = &externalID
	}

	if identity.Role != nil {
		m.RoleID = identity.Role.ID
	}

	return m
}
