// Package repository provides test doubles for the persistence interfaces.
package repository

import (
	"context"

	"stayhub/internal/domain/entity"
	domainrepo "stayhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIdentityRepository is a mock implementation of repository.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, id)

	return identityResult(args)
}

func (m *MockIdentityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	args := m.Called(ctx, email)

	return identityResult(args)
}

func (m *MockIdentityRepository) FindByUsername(ctx context.Context, username string) (*entity.Identity, error) {
	args := m.Called(ctx, username)

	return identityResult(args)
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	args := m.Called(ctx, identity)

	return args.Error(0)
}

func (m *MockIdentityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	args := m.Called(ctx, identity)

	return args.Error(0)
}

func identityResult(args mock.Arguments) (*entity.Identity, error) {
	var identity *entity.Identity
	if v := args.Get(0); v != nil {
		identity = v.(*entity.Identity)
	}

	return identity, args.Error(1)
}

// MockRoleRepository is a mock implementation of repository.RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	args := m.Called(ctx, name)

	var role *entity.Role
	if v := args.Get(0); v != nil {
		role = v.(*entity.Role)
	}

	return role, args.Error(1)
}

// StubRepositoryFactory hands out fixed repository doubles.
type StubRepositoryFactory struct {
	Identities domainrepo.IdentityRepository
	Roles      domainrepo.RoleRepository
}

func (f *StubRepositoryFactory) IdentityRepo() domainrepo.IdentityRepository {
	return f.Identities
}

func (f *StubRepositoryFactory) RoleRepo() domainrepo.RoleRepository {
	return f.Roles
}

// StubTransactionManager runs the transactional function directly against
// the stub factory. Set ExecuteErr to simulate a transaction that cannot
// even begin.
type StubTransactionManager struct {
	Factory    domainrepo.RepositoryFactory
	ExecuteErr error
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(domainrepo.RepositoryFactory) error) error {
	if m.ExecuteErr != nil {
		return m.ExecuteErr
	}

	return fn(m.Factory)
}
