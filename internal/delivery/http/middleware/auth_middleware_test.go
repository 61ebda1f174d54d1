package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/service"
	mockSvc "stayhub/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func accessClaims(role entity.RoleName) *service.VerifiedClaims {
	return &service.VerifiedClaims{
		TokenID:   uuid.New(),
		SubjectID: uuid.New(),
		Username:  "marge",
		Type:      service.TokenTypeAccess,
		Scope:     role.Scope(),
	}
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	tokens := new(mockSvc.MockTokenService)
	m := NewAuthMiddleware(tokens)
	next := func(c echo.Context) error { return nil }

	c, _ := newAuthTestContext("")
	err := m.Authenticate(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	c, _ = newAuthTestContext("Token abc")
	err = m.Authenticate(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}

func TestAuthenticate_StoresClaims(t *testing.T) {
	tokens := new(mockSvc.MockTokenService)
	claims := accessClaims(entity.RoleUser)
	tokens.On("VerifyTyped", "good-token", service.TokenTypeAccess).Return(claims, nil).Once()

	m := NewAuthMiddleware(tokens)
	var nextCalled bool
	next := func(c echo.Context) error {
		nextCalled = true
		got, ok := ClaimsFromContext(c)
		require.True(t, ok)
		assert.Equal(t, claims, got)
		assert.Equal(t, claims.SubjectID, c.Get(ContextKeyIdentityID))

		return nil
	}

	c, _ := newAuthTestContext("Bearer good-token")
	err := m.Authenticate(next)(c)
	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestAuthenticate_PropagatesVerificationFailure(t *testing.T) {
	tokens := new(mockSvc.MockTokenService)
	tokens.On("VerifyTyped", "refresh-token", service.TokenTypeAccess).
		Return(nil, domainerrors.ErrWrongTokenType).Once()

	m := NewAuthMiddleware(tokens)
	c, _ := newAuthTestContext("Bearer refresh-token")
	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrWrongTokenType)
}

func TestRequireRole_Hierarchy(t *testing.T) {
	tokens := new(mockSvc.MockTokenService)
	m := NewAuthMiddleware(tokens)
	next := func(c echo.Context) error { return nil }

	cases := []struct {
		acting   entity.RoleName
		required entity.RoleName
		allowed  bool
	}{
		{entity.RoleUser, entity.RoleUser, true},
		{entity.RoleUser, entity.RoleHost, false},
		{entity.RoleHost, entity.RoleHost, true},
		{entity.RoleHost, entity.RoleAdmin, false},
		{entity.RoleAdmin, entity.RoleHost, true},
		{entity.RoleAdmin, entity.RoleAdmin, true},
	}

	for _, tc := range cases {
		c, _ := newAuthTestContext("")
		c.Set(ContextKeyClaims, accessClaims(tc.acting))

		err := m.RequireRole(tc.required)(next)(c)
		if tc.allowed {
			assert.NoError(t, err, "%s vs %s", tc.acting, tc.required)
		} else {
			assert.ErrorIs(t, err, domainerrors.ErrForbidden, "%s vs %s", tc.acting, tc.required)
		}
	}
}

func TestRequireRole_RefusesWithoutClaims(t *testing.T) {
	tokens := new(mockSvc.MockTokenService)
	m := NewAuthMiddleware(tokens)

	c, _ := newAuthTestContext("")
	err := m.RequireRole(entity.RoleUser)(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRequireRole_RefreshScopeNeverAuthorizes(t *testing.T) {
	tokens := new(mockSvc.MockTokenService)
	m := NewAuthMiddleware(tokens)

	claims := accessClaims(entity.RoleUser)
	claims.Scope = service.RefreshScope

	c, _ := newAuthTestContext("")
	c.Set(ContextKeyClaims, claims)

	err := m.RequireRole(entity.RoleUser)(func(echo.Context) error { return nil })(c)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
