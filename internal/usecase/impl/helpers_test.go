package impl

import (
	"io"
	"log/slog"

	mockRepo "stayhub/internal/mocks/repository"
)

// newDiscardLogger creates a logger that discards all output, for tests.
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testRepos struct {
	identities *mockRepo.MockIdentityRepository
	roles      *mockRepo.MockRoleRepository
	txManager  *mockRepo.StubTransactionManager
}

// newTestRepos wires mock repositories behind a pass-through transaction
// manager.
func newTestRepos() *testRepos {
	identities := new(mockRepo.MockIdentityRepository)
	roles := new(mockRepo.MockRoleRepository)
	factory := &mockRepo.StubRepositoryFactory{
		Identities: identities,
		Roles:      roles,
	}

	return &testRepos{
		identities: identities,
		roles:      roles,
		txManager:  &mockRepo.StubTransactionManager{Factory: factory},
	}
}
