// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"stayhub/internal/delivery/http/response"
	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Machine-readable outcome tags for the federated callback. Clients branch
// on these instead of parsing messages.
const (
	callbackTagAccountConflict      = "account_conflict"
	callbackTagMissingUserInfo      = "missing_user_info"
	callbackTagAuthenticationFailed = "authentication_failed"
	callbackTagSystemError          = "system_error"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	identityUC   usecase.IdentityUsecase
	federationUC usecase.FederationUsecase
	logger       *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(identityUC usecase.IdentityUsecase, federationUC usecase.FederationUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identityUC:   identityUC,
		federationUC: federationUC,
		logger:       logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type googleCallbackRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// identityView is the client-safe projection of an identity.
type identityView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role"`
	Provider  string `json:"provider"`
}

type authView struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	Identity     identityView `json:"identity"`
}

func toIdentityView(identity *entity.Identity) identityView {
	return identityView{
		ID:        identity.ID.String(),
		Email:     identity.Email,
		Username:  identity.Username,
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
		Role:      identity.RoleName().String(),
		Provider:  identity.Provider.String(),
	}
}

func toAuthView(out *usecase.AuthOutput) authView {
	return authView{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		Identity:     toIdentityView(out.Identity),
	}
}

// Register handles local account registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Registration input failed validation")
	}

	out, err := h.identityUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAuthView(out), "Account registered")
}

// Login handles password login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Login input failed validation")
	}

	out, err := h.identityUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAuthView(out), "Login successful")
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Refresh input failed validation")
	}

	out, err := h.identityUC.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken": out.AccessToken,
	}, "Access token refreshed")
}

// GoogleCallback resolves a Google ID token into a platform session. Every
// failure carries one of the fixed machine tags in the error details.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	var req googleCallbackRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid callback input", callbackTagAuthenticationFailed)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Callback input failed validation", callbackTagAuthenticationFailed)
	}

	out, err := h.federationUC.FederatedLogin(c.Request().Context(), &usecase.FederatedLoginInput{
		IDToken: req.IDToken,
	})
	if err != nil {
		return h.respondCallbackError(c, err)
	}

	return response.Success(c, http.StatusOK, toAuthView(out), "Federated login successful")
}

func (h *AuthHandler) respondCallbackError(c echo.Context, err error) error {
	tag := callbackTag(err)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			h.logger.Error("Federated callback failed",
				"errorCode", appErr.ErrorCode(),
				"error", err.Error(),
			)
		}

		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), tag)
	}

	h.logger.Warn("Federated callback rejected", "error", err.Error())

	return response.Error(c, http.StatusUnauthorized, "ACCESS_DENIED", "Access denied", tag)
}

// callbackTag maps a federated-login failure onto its machine tag.
func callbackTag(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrAccountConflict):
		return callbackTagAccountConflict
	case errors.Is(err, domainerrors.ErrMissingAssertionFields):
		return callbackTagMissingUserInfo
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() >= http.StatusInternalServerError {
		return callbackTagSystemError
	}

	return callbackTagAuthenticationFailed
}
