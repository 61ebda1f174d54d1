package handler

import (
	"log/slog"
	"net/http"

	"stayhub/internal/delivery/http/middleware"
	"stayhub/internal/delivery/http/response"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the authenticated caller's own identity and the
// role-gated dashboards.
type ProfileHandler struct {
	identityUC usecase.IdentityUsecase
	logger     *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(identityUC usecase.IdentityUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		identityUC: identityUC,
		logger:     logger,
	}
}

// Me returns the caller's identity as established by the access token.
func (h *ProfileHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return domainerrors.ErrAccessDenied.WrapMessage("claims missing from context")
	}

	identity, err := h.identityUC.GetIdentity(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toIdentityView(identity), "")
}

// HostDashboard is the entry point for listing management. Reaching it at
// all requires a HOST-or-better access token.
func (h *ProfileHandler) HostDashboard(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return domainerrors.ErrAccessDenied.WrapMessage("claims missing from context")
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"username": claims.Username,
		"scope":    claims.Scope,
	}, "Host dashboard")
}

// AdminDashboard is the entry point for platform administration.
func (h *ProfileHandler) AdminDashboard(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return domainerrors.ErrAccessDenied.WrapMessage("claims missing from context")
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"username": claims.Username,
		"scope":    claims.Scope,
	}, "Admin dashboard")
}
