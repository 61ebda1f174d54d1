package postgres

import (
	"context"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/repository"
	"stayhub/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// roleRepository implements the domain.RoleRepository interface using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// FindByName retrieves a role catalog entry by its name. The catalog is
// seeded at deployment; an absent entry is a configuration fault the
// caller decides how to report.
func (repo *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var roleM model.RoleModel
	err := repo.db.WithContext(ctx).
		Where("name = ?", name.String()).
		First(&roleM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find role by name")
	}

	return &entity.Role{
		ID:        roleM.ID,
		Name:      entity.RoleName(roleM.Name),
		CreatedAt: roleM.CreatedAt,
	}, nil
}
