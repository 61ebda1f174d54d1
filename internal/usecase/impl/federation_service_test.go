package impl

import (
	"context"
	"testing"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/repository"
	"stayhub/internal/domain/service"
	mockSvc "stayhub/internal/mocks/service"
	"stayhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssertion() *service.FederatedAssertion {
	return &service.FederatedAssertion{
		SubjectID:     "g1",
		Email:         "a@x.com",
		Name:          "Alice",
		AvatarURL:     "https://example.com/alice.png",
		EmailVerified: true,
	}
}

type federationHarness struct {
	repos    *testRepos
	verifier *mockSvc.MockFederatedVerifier
	tokens   *mockSvc.MockTokenService
	svc      usecase.FederationUsecase
}

func newFederationHarness() *federationHarness {
	repos := newTestRepos()
	verifier := new(mockSvc.MockFederatedVerifier)
	tokens := new(mockSvc.MockTokenService)

	return &federationHarness{
		repos:    repos,
		verifier: verifier,
		tokens:   tokens,
		svc:      NewFederationService(repos.txManager, verifier, tokens, newDiscardLogger()),
	}
}

func TestFederatedLogin_CreatesNewIdentity(t *testing.T) {
	h := newFederationHarness()
	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").
		Return(nil, repository.ErrIdentityNotFound).Once()
	h.repos.roles.On("FindByName", mock.Anything, entity.RoleUser).Return(guestRole(), nil).Once()
	h.repos.identities.On("FindByUsername", mock.Anything, "usera").
		Return(nil, repository.ErrIdentityNotFound).Once()
	h.repos.identities.On("Create", mock.Anything, mock.AnythingOfType("*entity.Identity")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Identity).ID = uuid.New()
		}).
		Return(nil).Once()
	h.tokens.On("IssuePair", mock.AnythingOfType("*entity.Identity")).
		Return("access-token", "refresh-token", nil).Once()

	out, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	require.NoError(t, err)

	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "usera", out.Identity.Username)
	assert.Equal(t, "g1", out.Identity.ExternalID)
	assert.Equal(t, entity.ProviderFederated, out.Identity.Provider)
	assert.Equal(t, "a@x.com", out.Identity.Email)
	assert.True(t, out.Identity.Active)

	h.repos.identities.AssertExpectations(t)
}

func TestFederatedLogin_ReloginSameCredential(t *testing.T) {
	h := newFederationHarness()
	existing := &entity.Identity{
		ID:         uuid.New(),
		Email:      "a@x.com",
		Username:   "usera",
		ExternalID: "g1",
		AvatarURL:  "https://example.com/alice.png",
		Provider:   entity.ProviderFederated,
		Role:       guestRole(),
		Active:     true,
	}

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil).Once()
	h.tokens.On("IssuePair", existing).Return("access-token", "refresh-token", nil).Once()

	out, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	require.NoError(t, err)

	// A repeat login with identical profile data writes nothing.
	assert.Equal(t, existing, out.Identity)
	h.repos.identities.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFederatedLogin_ReloginRefreshesChangedAvatar(t *testing.T) {
	h := newFederationHarness()
	existing := &entity.Identity{
		ID:         uuid.New(),
		Email:      "a@x.com",
		Username:   "usera",
		ExternalID: "g1",
		AvatarURL:  "https://example.com/old.png",
		Provider:   entity.ProviderFederated,
		Role:       guestRole(),
		Active:     true,
	}

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil).Once()
	h.repos.identities.On("Update", mock.Anything, existing).Return(nil).Once()
	h.tokens.On("IssuePair", existing).Return("access-token", "refresh-token", nil).Once()

	out, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/alice.png", out.Identity.AvatarURL)
	h.repos.identities.AssertExpectations(t)
}

func TestFederatedLogin_LinksLocalAccount(t *testing.T) {
	h := newFederationHarness()
	existing := &entity.Identity{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Username:     "alice",
		Provider:     entity.ProviderLocal,
		PasswordHash: "hashed-password",
		Role:         guestRole(),
		Active:       true,
	}

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil).Once()
	h.repos.identities.On("Update", mock.Anything, existing).Return(nil).Once()
	h.tokens.On("IssuePair", existing).Return("access-token", "refresh-token", nil).Once()

	out, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	require.NoError(t, err)

	// Credential attached, password and username preserved.
	assert.Equal(t, "g1", out.Identity.ExternalID)
	assert.Equal(t, entity.ProviderFederatedLinked, out.Identity.Provider)
	assert.Equal(t, "alice", out.Identity.Username)
	assert.Equal(t, "hashed-password", out.Identity.PasswordHash)
	assert.Equal(t, "Alice", out.Identity.Name)
}

func TestFederatedLogin_ConflictLeavesStoreUntouched(t *testing.T) {
	h := newFederationHarness()
	existing := &entity.Identity{
		ID:         uuid.New(),
		Email:      "a@x.com",
		Username:   "usera",
		ExternalID: "g2",
		Provider:   entity.ProviderFederated,
		Role:       guestRole(),
		Active:     true,
	}

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil).Once()

	_, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	assert.ErrorIs(t, err, domainerrors.ErrAccountConflict)

	assert.Equal(t, "g2", existing.ExternalID)
	h.repos.identities.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	h.repos.identities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	h.tokens.AssertNotCalled(t, "IssuePair", mock.Anything)
}

func TestFederatedLogin_CreationRaceResolvesAsRelogin(t *testing.T) {
	h := newFederationHarness()
	winner := &entity.Identity{
		ID:         uuid.New(),
		Email:      "a@x.com",
		Username:   "usera",
		ExternalID: "g1",
		AvatarURL:  "https://example.com/alice.png",
		Provider:   entity.ProviderFederated,
		Role:       guestRole(),
		Active:     true,
	}

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").
		Return(nil, repository.ErrIdentityNotFound).Once()
	h.repos.roles.On("FindByName", mock.Anything, entity.RoleUser).Return(guestRole(), nil).Once()
	h.repos.identities.On("FindByUsername", mock.Anything, "usera").
		Return(nil, repository.ErrIdentityNotFound).Once()
	h.repos.identities.On("Create", mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateIdentity).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").Return(winner, nil).Once()
	h.tokens.On("IssuePair", winner).Return("access-token", "refresh-token", nil).Once()

	out, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	require.NoError(t, err)

	assert.Equal(t, winner, out.Identity)
	h.repos.identities.AssertExpectations(t)
}

func TestFederatedLogin_RejectsUnverifiedEmail(t *testing.T) {
	h := newFederationHarness()
	assertion := newAssertion()
	assertion.EmailVerified = false

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(assertion, nil).Once()

	_, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}

func TestFederatedLogin_VerifierFailurePropagates(t *testing.T) {
	h := newFederationHarness()
	h.verifier.On("VerifyIDToken", mock.Anything, "bad-token").
		Return(nil, domainerrors.ErrMissingAssertionFields).Once()

	_, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "bad-token"})
	assert.ErrorIs(t, err, domainerrors.ErrMissingAssertionFields)
}

func TestFederatedLogin_RoleCatalogMisconfigured(t *testing.T) {
	h := newFederationHarness()
	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").
		Return(nil, repository.ErrIdentityNotFound).Once()
	h.repos.roles.On("FindByName", mock.Anything, entity.RoleUser).
		Return(nil, repository.ErrRoleNotFound).Once()

	_, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	assert.ErrorIs(t, err, domainerrors.ErrRoleCatalogMisconfigured)
}

func TestFederatedLogin_DisabledIdentity(t *testing.T) {
	h := newFederationHarness()
	existing := &entity.Identity{
		ID:         uuid.New(),
		Email:      "a@x.com",
		ExternalID: "g1",
		Provider:   entity.ProviderFederated,
		Role:       guestRole(),
		Active:     false,
	}

	h.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(newAssertion(), nil).Once()
	h.repos.identities.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil).Once()

	_, err := h.svc.FederatedLogin(context.Background(), &usecase.FederatedLoginInput{IDToken: "id-token"})
	assert.ErrorIs(t, err, domainerrors.ErrIdentityDisabled)
}
