package token

import (
	"time"

	"stayhub/internal/domain/service"
	"stayhub/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenClaims is the wire shape of every issued token. Registered claims
// carry issuer, token id, subject and the time window; the custom fields
// carry the denormalized username, the token type and the granted scope.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"usn"`
	Type     string `json:"type"`
	Scope    string `json:"scope"`
}

// newTokenClaims builds the claim set for a freshly issued token. The jti
// is a new random UUID so every issuance is distinguishable, even for the
// same subject within the same second.
func newTokenClaims(issuer string, subjectID uuid.UUID, username string, tokenType service.TokenType, scope string, issuedAt time.Time, ttl time.Duration) *tokenClaims {
	return &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ID:        uuid.NewString(),
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Username: username,
		Type:     tokenType.String(),
		Scope:    scope,
	}
}

// toVerified converts decoded wire claims into the typed domain view.
// Structurally invalid ids or a missing time window are decode failures,
// not verification failures, and surface as malformed-token errors upstream.
func (c *tokenClaims) toVerified() (*service.VerifiedClaims, error) {
	tokenID, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse token id claim")
	}

	subjectID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "parse subject claim")
	}

	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return nil, errors.New("token missing time window claims")
	}

	tokenType := service.TokenType(c.Type)
	if tokenType != service.TokenTypeAccess && tokenType != service.TokenTypeRefresh {
		return nil, errors.Errorf("unknown token type claim: %q", c.Type)
	}

	return &service.VerifiedClaims{
		TokenID:   tokenID,
		SubjectID: subjectID,
		Username:  c.Username,
		Type:      tokenType,
		Scope:     c.Scope,
		IssuedAt:  c.IssuedAt.Time,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
