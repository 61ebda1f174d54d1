package google

import (
	"context"
	"testing"

	"stayhub/config"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newStubbedVerifier(t *testing.T, validate validateFunc) *verifier {
	t.Helper()

	svc, err := NewVerifier(&config.GoogleOAuthConfig{ClientID: "client-id"})
	require.NoError(t, err)

	v, ok := svc.(*verifier)
	require.True(t, ok)
	v.validate = validate

	return v
}

func TestNewVerifier_RequiresClientID(t *testing.T) {
	_, err := NewVerifier(nil)
	assert.Error(t, err)

	_, err = NewVerifier(&config.GoogleOAuthConfig{})
	assert.Error(t, err)
}

func TestVerifyIDToken_MapsPayload(t *testing.T) {
	v := newStubbedVerifier(t, func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "raw-token", token)
		assert.Equal(t, "client-id", audience)

		return &idtoken.Payload{
			Subject: "google-sub-123",
			Claims: map[string]any{
				"email":          "a@x.com",
				"email_verified": true,
				"name":           "Alice",
				"picture":        "https://example.com/a.png",
			},
		}, nil
	})

	assertion, err := v.VerifyIDToken(context.Background(), "raw-token")
	require.NoError(t, err)

	assert.Equal(t, "google-sub-123", assertion.SubjectID)
	assert.Equal(t, "a@x.com", assertion.Email)
	assert.Equal(t, "Alice", assertion.Name)
	assert.Equal(t, "https://example.com/a.png", assertion.AvatarURL)
	assert.True(t, assertion.EmailVerified)
}

func TestVerifyIDToken_ValidationFailure(t *testing.T) {
	v := newStubbedVerifier(t, func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("invalid signature")
	})

	_, err := v.VerifyIDToken(context.Background(), "raw-token")
	assert.Error(t, err)
}

func TestVerifyIDToken_MissingUserInfo(t *testing.T) {
	cases := []struct {
		name    string
		payload *idtoken.Payload
	}{
		{
			name:    "no email",
			payload: &idtoken.Payload{Subject: "sub", Claims: map[string]any{}},
		},
		{
			name:    "no subject",
			payload: &idtoken.Payload{Claims: map[string]any{"email": "a@x.com"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newStubbedVerifier(t, func(context.Context, string, string) (*idtoken.Payload, error) {
				return tc.payload, nil
			})

			_, err := v.VerifyIDToken(context.Background(), "raw-token")
			assert.ErrorIs(t, err, domainerrors.ErrMissingAssertionFields)
		})
	}
}

func TestVerifyIDToken_StringEmailVerified(t *testing.T) {
	v := newStubbedVerifier(t, func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Subject: "sub",
			Claims: map[string]any{
				"email":          "a@x.com",
				"email_verified": "true",
			},
		}, nil
	})

	assertion, err := v.VerifyIDToken(context.Background(), "raw-token")
	require.NoError(t, err)
	assert.True(t, assertion.EmailVerified)
}
