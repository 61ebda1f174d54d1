package impl

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/repository"
	"stayhub/internal/domain/service"
	"stayhub/internal/usecase"

	"github.com/pkg/errors"
)

// federationService implements the FederationUsecase interface. It resolves
// a verified federated assertion to exactly one of four outcomes: create a
// new account, link the credential to an existing local account, re-login
// an already-linked account, or refuse with a conflict.
type federationService struct {
	txManager    repository.TransactionManager
	verifier     service.FederatedVerifier
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewFederationService is the constructor for federationService.
func NewFederationService(
	txManager repository.TransactionManager,
	verifier service.FederatedVerifier,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.FederationUsecase {
	return &federationService{
		txManager:    txManager,
		verifier:     verifier,
		tokenService: tokenService,
		logger:       logger,
	}
}

// FederatedLogin verifies the provider's ID token, resolves the assertion
// against the identity store inside one transaction, and issues tokens only
// after that transaction has committed. A conflict leaves the store
// untouched.
func (srv *federationService) FederatedLogin(ctx context.Context, input *usecase.FederatedLoginInput) (*usecase.AuthOutput, error) {
	assertion, err := srv.verifier.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.logger.Warn("Federated assertion rejected", "error", err.Error())

		return nil, err
	}

	if !assertion.EmailVerified {
		srv.logger.Warn("Federated email not verified", "subject", assertion.SubjectID)

		return nil, errors.Wrap(domainerrors.ErrAccessDenied, "federated email not verified")
	}

	var resolved *entity.Identity
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identity, err := srv.resolveAssertion(ctx, repoFactory, assertion)
		if err != nil {
			return err
		}

		resolved = identity

		return nil
	})
	if err != nil {
		srv.logger.Warn("Federated login failed", "subject", assertion.SubjectID, "error", err.Error())

		return nil, err
	}

	accessToken, refreshToken, err := srv.tokenService.IssuePair(resolved)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens after federated login")
	}

	srv.logger.Debug("Federated login resolved", "identityID", resolved.ID, "provider", resolved.Provider)

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Identity:     resolved,
	}, nil
}

// resolveAssertion picks the linking outcome by correlating on the
// normalized email.
func (srv *federationService) resolveAssertion(ctx context.Context, repoFactory repository.RepositoryFactory, assertion *service.FederatedAssertion) (*entity.Identity, error) {
	identityRepo := repoFactory.IdentityRepo()
	email := entity.NormalizeEmail(assertion.Email)

	identity, err := identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return srv.createFromAssertion(ctx, repoFactory, assertion)
		}

		return nil, errors.Wrap(err, "failed to find identity by email")
	}

	return srv.linkOrRelogin(ctx, identityRepo, identity, assertion)
}

// createFromAssertion provisions a brand-new account for a first federated
// login. If a concurrent signup wins the unique-constraint race, the create
// is retried as a lookup and resolved through the linking rules instead.
func (srv *federationService) createFromAssertion(ctx context.Context, repoFactory repository.RepositoryFactory, assertion *service.FederatedAssertion) (*entity.Identity, error) {
	identityRepo := repoFactory.IdentityRepo()

	role, err := repoFactory.RoleRepo().FindByName(ctx, entity.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRoleCatalogMisconfigured, "default role missing")
		}

		return nil, errors.Wrap(err, "failed to load default role")
	}

	username, err := resolveAvailableUsername(ctx, identityRepo, assertion.Email)
	if err != nil {
		return nil, err
	}

	identity := &entity.Identity{
		Email:      entity.NormalizeEmail(assertion.Email),
		Username:   username,
		Name:       assertion.Name,
		AvatarURL:  assertion.AvatarURL,
		ExternalID: assertion.SubjectID,
		Provider:   entity.ProviderFederated,
		Role:       role,
		Active:     true,
	}

	if err := identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			existing, findErr := identityRepo.FindByEmail(ctx, identity.Email)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to re-read identity after creation race")
			}

			return srv.linkOrRelogin(ctx, identityRepo, existing, assertion)
		}

		return nil, errors.Wrap(err, "failed to create federated identity")
	}

	srv.logger.Info("Federated identity created", "identityID", identity.ID, "username", username)

	return identity, nil
}

// linkOrRelogin handles an email that already has an account: attach the
// federated credential to a local account, accept a repeat login from the
// same credential, or refuse a different credential outright.
func (srv *federationService) linkOrRelogin(ctx context.Context, identityRepo repository.IdentityRepository, identity *entity.Identity, assertion *service.FederatedAssertion) (*entity.Identity, error) {
	if !identity.Active {
		return nil, errors.Wrap(domainerrors.ErrIdentityDisabled, "federated login refused")
	}

	switch {
	case identity.ExternalID == "":
		// First federated login on a password account: link the credential.
		identity.ExternalID = assertion.SubjectID
		if identity.Provider == entity.ProviderLocal {
			identity.Provider = entity.ProviderFederatedLinked
		}
		if assertion.Name != "" && (identity.Name == "" || identity.Name == identity.Email) {
			identity.Name = assertion.Name
		}
		if identity.AvatarURL == "" {
			identity.AvatarURL = assertion.AvatarURL
		}

		if err := identityRepo.Update(ctx, identity); err != nil {
			return nil, errors.Wrap(err, "failed to link federated credential")
		}

		srv.logger.Info("Federated credential linked", "identityID", identity.ID)

		return identity, nil

	case identity.ExternalID == assertion.SubjectID:
		// Repeat login from the same credential; only refresh a changed avatar.
		if assertion.AvatarURL != "" && identity.AvatarURL != assertion.AvatarURL {
			identity.AvatarURL = assertion.AvatarURL
			if err := identityRepo.Update(ctx, identity); err != nil {
				return nil, errors.Wrap(err, "failed to refresh identity avatar")
			}
		}

		return identity, nil

	default:
		// A different federated credential already owns this email.
		return nil, errors.Wrap(domainerrors.ErrAccountConflict, "federated credential mismatch")
	}
}
