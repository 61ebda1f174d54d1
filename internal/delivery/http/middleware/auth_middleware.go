// Package middleware contains the echo middlewares of the HTTP delivery.
package middleware

import (
	"strings"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyClaims is where Authenticate stores the verified claims.
	ContextKeyClaims = "authClaims"
	// ContextKeyIdentityID is where Authenticate stores the subject id.
	ContextKeyIdentityID = "identityID"
)

// AuthMiddleware guards routes behind access-token verification and role
// checks. It fails closed: any failure to establish the caller's identity
// or role denies the request.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the verified
// claims on the request context. A refresh token presented here is refused
// as a type mismatch, never accepted.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrAccessDenied.WrapMessage("authorization header missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrAccessDenied.WrapMessage("authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.VerifyTyped(tokenString, service.TokenTypeAccess)
		if err != nil {
			return err
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyIdentityID, claims.SubjectID)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's role level
// against the requirement. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(required entity.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextKeyClaims).(*service.VerifiedClaims)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("role information missing")
			}

			role, ok := claims.RoleName()
			if !ok || !role.Permits(required) {
				return domainerrors.ErrForbidden.WrapMessage("insufficient role")
			}

			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified claims stored by Authenticate.
func ClaimsFromContext(c echo.Context) (*service.VerifiedClaims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*service.VerifiedClaims)

	return claims, ok
}
