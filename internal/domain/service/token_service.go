package service

import (
	"time"

	"stayhub/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenType distinguishes the two kinds of self-contained credentials.
type TokenType string

const (
	// TokenTypeAccess is the short-lived credential authorizing resource
	// requests, scoped to the holder's role.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is the long-lived credential usable only to obtain a
	// new access token. It carries no resource-authorization scope.
	TokenTypeRefresh TokenType = "refresh"
)

// RefreshScope is the fixed sentinel scope carried by every refresh token,
// regardless of the identity's role.
const RefreshScope = "REFRESH_TOKEN"

// String returns the string representation of the TokenType.
func (t TokenType) String() string {
	return string(t)
}

// VerifiedClaims is the typed view of a token that passed signature and
// expiry verification. Type assertions (access vs refresh) are a separate
// responsibility of the caller via VerifyTyped.
type VerifiedClaims struct {
	TokenID   uuid.UUID // jti; unique per issued token.
	SubjectID uuid.UUID // The identity the token was issued for.
	Username  string    // Denormalized handle, for diagnostics and display.
	Type      TokenType // access or refresh.
	Scope     string    // Space-joined granted authorities.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAccess reports whether the claims belong to an access token.
func (c *VerifiedClaims) IsAccess() bool {
	return c.Type == TokenTypeAccess
}

// RoleName extracts the role encoded in an access token's scope.
// Refresh tokens and unknown scopes yield ok == false.
func (c *VerifiedClaims) RoleName() (entity.RoleName, bool) {
	return entity.RoleNameFromScope(c.Scope)
}

// TokenService issues and verifies the platform's self-contained bearer
// tokens. Tokens are stateless: nothing is persisted at issuance and
// re-issuing never invalidates previously issued tokens.
type TokenService interface {
	// Issue builds a signed token of the given type for an identity.
	// Access tokens require the identity to carry a role; their scope is
	// derived from it. Refresh tokens carry the fixed RefreshScope sentinel.
	Issue(identity *entity.Identity, tokenType TokenType) (string, error)

	// IssuePair issues an access and refresh token for the same identity.
	IssuePair(identity *entity.Identity) (accessToken string, refreshToken string, err error)

	// Verify parses a token string, checking structure, signature and
	// expiry. Failures map onto the domain taxonomy: ErrTokenMalformed,
	// ErrTokenSignatureInvalid, ErrTokenExpired.
	Verify(tokenString string) (*VerifiedClaims, error)

	// VerifyTyped verifies the token and additionally asserts its type,
	// failing with ErrWrongTokenType on mismatch. A well-signed refresh
	// token presented where an access token is required is a type error,
	// never a signature error.
	VerifyTyped(tokenString string, want TokenType) (*VerifiedClaims, error)

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
