// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/repository"
	"stayhub/internal/domain/service"
	"stayhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService. It receives all dependencies as interfaces.
func NewIdentityService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.IdentityUsecase {
	return &identityService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register orchestrates local account creation. The new account gets the
// default guest role from the catalog; uniqueness of email and username is
// decided by the store's constraints.
func (srv *identityService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Starting registration", "email", input.Email)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registered *entity.Identity

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()
		roleRepo := repoFactory.RoleRepo()

		role, err := roleRepo.FindByName(ctx, entity.RoleUser)
		if err != nil {
			if errors.Is(err, repository.ErrRoleNotFound) {
				return errors.Wrap(domainerrors.ErrRoleCatalogMisconfigured, "default role missing")
			}

			return errors.Wrap(err, "failed to load default role")
		}

		identity := &entity.Identity{
			Email:        entity.NormalizeEmail(input.Email),
			Username:     input.Username,
			Name:         input.Name,
			Provider:     entity.ProviderLocal,
			PasswordHash: hashedPassword,
			Role:         role,
			Active:       true,
		}

		if err := identityRepo.Create(ctx, identity); err != nil {
			if errors.Is(err, repository.ErrDuplicateIdentity) {
				return errors.Wrap(domainerrors.ErrIdentityAlreadyExists, "registration conflict")
			}

			return errors.Wrap(err, "failed to create identity")
		}

		registered = identity

		return nil
	})
	if err != nil {
		srv.logger.Warn("Registration failed", "email", input.Email, "error", err.Error())

		return nil, err
	}

	accessToken, refreshToken, err := srv.tokenService.IssuePair(registered)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens after registration")
	}

	srv.logger.Debug("Identity registered", "identityID", registered.ID)

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Identity:     registered,
	}, nil
}

// Login verifies a password credential and issues a fresh token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (srv *identityService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	var loggedIn *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		identity, err := identityRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
			}

			return errors.Wrap(err, "failed to find identity by email")
		}

		if !srv.hasher.Check(input.Password, identity.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		if !identity.Active {
			return errors.Wrap(domainerrors.ErrIdentityDisabled, "login refused")
		}

		loggedIn = identity

		return nil
	})
	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err.Error())

		return nil, err
	}

	accessToken, refreshToken, err := srv.tokenService.IssuePair(loggedIn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens after login")
	}

	srv.logger.Debug("Identity logged in", "identityID", loggedIn.ID)

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Identity:     loggedIn,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented refresh token stays valid until its own expiry; nothing is
// rotated or revoked.
func (srv *identityService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.VerifyTyped(input.RefreshToken, service.TokenTypeRefresh)
	if err != nil {
		srv.logger.Warn("Refresh token rejected", "error", err.Error())

		return nil, err
	}

	var identity *entity.Identity
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByID(ctx, claims.SubjectID)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return errors.Wrap(domainerrors.ErrAccessDenied, "refresh subject no longer exists")
			}

			return errors.Wrap(err, "failed to find refresh subject")
		}

		if !found.Active {
			return errors.Wrap(domainerrors.ErrIdentityDisabled, "refresh refused")
		}

		identity = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := srv.tokenService.Issue(identity, service.TokenTypeAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token on refresh")
	}

	srv.logger.Debug("Access token refreshed", "identityID", identity.ID)

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// GetIdentity loads a single identity by id for profile-style reads.
func (srv *identityService) GetIdentity(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return errors.Wrap(domainerrors.ErrIdentityNotFound, "identity lookup failed")
			}

			return errors.Wrap(err, "failed to find identity by id")
		}

		identity = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return identity, nil
}
