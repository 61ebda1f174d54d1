// Package google verifies Google ID tokens and maps them to federated
// identity assertions.
package google

import (
	"context"

	"stayhub/config"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/service"
	"stayhub/internal/errors"

	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate so the network call can be
// substituted in tests.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type verifier struct {
	clientID string
	validate validateFunc
}

// NewVerifier creates a FederatedVerifier that validates Google ID tokens
// against the configured OAuth client ID.
func NewVerifier(cfg *config.GoogleOAuthConfig) (service.FederatedVerifier, error) {
	if cfg == nil || cfg.ClientID == "" {
		return nil, errors.New("google oauth client id is required")
	}

	return &verifier{
		clientID: cfg.ClientID,
		validate: idtoken.Validate,
	}, nil
}

// VerifyIDToken validates the token's signature, audience and expiry via
// Google's certificates, then extracts the identity assertion. Assertions
// without a subject or email are unusable for account correlation.
func (v *verifier) VerifyIDToken(ctx context.Context, rawToken string) (*service.FederatedAssertion, error) {
	payload, err := v.validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, errors.Wrap(err, "validate google id token")
	}

	assertion := &service.FederatedAssertion{
		SubjectID:     payload.Subject,
		Email:         stringClaim(payload, "email"),
		Name:          stringClaim(payload, "name"),
		AvatarURL:     stringClaim(payload, "picture"),
		EmailVerified: boolClaim(payload, "email_verified"),
	}

	if assertion.SubjectID == "" || assertion.Email == "" {
		return nil, domainerrors.ErrMissingAssertionFields
	}

	return assertion, nil
}

func stringClaim(payload *idtoken.Payload, key string) string {
	value, _ := payload.Claims[key].(string)

	return value
}

func boolClaim(payload *idtoken.Payload, key string) bool {
	switch value := payload.Claims[key].(type) {
	case bool:
		return value
	case string:
		return value == "true"
	default:
		return false
	}
}
