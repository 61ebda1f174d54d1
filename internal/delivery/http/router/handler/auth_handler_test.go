package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayhub/internal/delivery/http/validator"
	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/errors"
	"stayhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFederationUC struct {
	out *usecase.AuthOutput
	err error
}

func (s *stubFederationUC) FederatedLogin(context.Context, *usecase.FederatedLoginInput) (*usecase.AuthOutput, error) {
	return s.out, s.err
}

func newCallbackContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/google/callback", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newCallbackHandler(federationUC usecase.FederationUsecase) *AuthHandler {
	return NewAuthHandler(nil, federationUC, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGoogleCallback_Success(t *testing.T) {
	identity := &entity.Identity{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Username: "usera",
		Provider: entity.ProviderFederated,
		Role:     &entity.Role{Name: entity.RoleUser},
	}
	h := newCallbackHandler(&stubFederationUC{out: &usecase.AuthOutput{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		Identity:     identity,
	}})

	c, rec := newCallbackContext(`{"idToken":"id-token"}`)
	require.NoError(t, h.GoogleCallback(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"accessToken":"access-token"`)
	assert.Contains(t, body, `"username":"usera"`)
	assert.NotContains(t, body, "PasswordHash")
}

func TestGoogleCallback_MachineTags(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantTag    string
	}{
		{
			name:       "conflict",
			err:        errors.Wrap(domainerrors.ErrAccountConflict, "federated credential mismatch"),
			wantStatus: http.StatusConflict,
			wantTag:    callbackTagAccountConflict,
		},
		{
			name:       "missing user info",
			err:        domainerrors.ErrMissingAssertionFields,
			wantStatus: http.StatusBadRequest,
			wantTag:    callbackTagMissingUserInfo,
		},
		{
			name:       "verification failure",
			err:        errors.New("invalid signature"),
			wantStatus: http.StatusUnauthorized,
			wantTag:    callbackTagAuthenticationFailed,
		},
		{
			name:       "store outage",
			err:        domainerrors.NewStoreExecuteError(errors.New("connection refused"), "find identity"),
			wantStatus: http.StatusServiceUnavailable,
			wantTag:    callbackTagSystemError,
		},
		{
			name:       "role catalog broken",
			err:        errors.Wrap(domainerrors.ErrRoleCatalogMisconfigured, "default role missing"),
			wantStatus: http.StatusInternalServerError,
			wantTag:    callbackTagSystemError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newCallbackHandler(&stubFederationUC{err: tc.err})

			c, rec := newCallbackContext(`{"idToken":"id-token"}`)
			require.NoError(t, h.GoogleCallback(c))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantTag)

			// Internal diagnostic text never reaches the client.
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestGoogleCallback_RejectsMissingIDToken(t *testing.T) {
	h := newCallbackHandler(&stubFederationUC{})

	c, rec := newCallbackContext(`{}`)
	require.NoError(t, h.GoogleCallback(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), callbackTagAuthenticationFailed)
}
