// Package token implements issuance and verification of the platform's
// self-contained bearer tokens on top of github.com/golang-jwt/jwt.
package token

import (
	"time"

	"stayhub/config"
	"stayhub/internal/domain/entity"
	domainerrors "stayhub/internal/domain/errors"
	"stayhub/internal/domain/service"
	"stayhub/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

type jwtService struct {
	signer     Signer
	parser     *jwt.Parser
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      service.Clock
}

// NewTokenService creates a TokenService signing with a single symmetric
// secret. Expiry windows come from configuration; the injected clock is
// used for both issuance timestamps and verification-time expiry checks.
func NewTokenService(cfg *config.TokenConfig, clock service.Clock) (service.TokenService, error) {
	if cfg == nil {
		return nil, errors.New("token config is required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}

	signer, err := NewHMACSigner(cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	method := jwt.GetSigningMethod(signer.Alg())
	if method == nil {
		return nil, errors.Errorf("unknown signing method: %s", signer.Alg())
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signer.Alg()}),
		jwt.WithTimeFunc(clock.Now),
		jwt.WithExpirationRequired(),
	)

	return &jwtService{
		signer:     signer,
		parser:     parser,
		method:     method,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		clock:      clock,
	}, nil
}

// Issue builds, encodes and signs a token for the identity. The scope of
// an access token is derived from the identity's role; refresh tokens
// always carry the fixed refresh sentinel scope.
func (s *jwtService) Issue(identity *entity.Identity, tokenType service.TokenType) (string, error) {
	var scope string
	var ttl time.Duration

	switch tokenType {
	case service.TokenTypeAccess:
		role := identity.RoleName()
		if !role.IsValid() {
			return "", errors.New("cannot issue access token for identity without a valid role")
		}
		scope = role.Scope()
		ttl = s.accessTTL
	case service.TokenTypeRefresh:
		scope = service.RefreshScope
		ttl = s.refreshTTL
	default:
		return "", errors.Errorf("unknown token type: %q", tokenType)
	}

	claims := newTokenClaims(s.issuer, identity.ID, identity.Username, tokenType, scope, s.clock.Now(), ttl)

	token := jwt.NewWithClaims(s.method, claims)
	signingInput, err := token.SigningString()
	if err != nil {
		return "", errors.Wrap(err, "encode token claims")
	}

	sig, err := s.signer.Sign(signingInput)
	if err != nil {
		return "", err
	}

	return signingInput + "." + token.EncodeSegment(sig), nil
}

func (s *jwtService) IssuePair(identity *entity.Identity) (string, string, error) {
	accessToken, err := s.Issue(identity, service.TokenTypeAccess)
	if err != nil {
		return "", "", errors.Wrap(err, "issue access token")
	}

	refreshToken, err := s.Issue(identity, service.TokenTypeRefresh)
	if err != nil {
		return "", "", errors.Wrap(err, "issue refresh token")
	}

	return accessToken, refreshToken, nil
}

// Verify checks structure, signature and expiry, in that order of
// precedence, and maps failures onto the domain token error taxonomy.
func (s *jwtService) Verify(tokenString string) (*service.VerifiedClaims, error) {
	claims := &tokenClaims{}
	if _, err := s.parser.ParseWithClaims(tokenString, claims, s.keyFor); err != nil {
		return nil, mapVerifyError(err)
	}

	verified, err := claims.toVerified()
	if err != nil {
		return nil, domainerrors.ErrTokenMalformed
	}

	return verified, nil
}

// VerifyTyped verifies the token and asserts its type. A valid token of
// the wrong type is reported as a type mismatch, never as a signature or
// structural failure.
func (s *jwtService) VerifyTyped(tokenString string, want service.TokenType) (*service.VerifiedClaims, error) {
	verified, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if verified.Type != want {
		return nil, domainerrors.ErrWrongTokenType
	}

	return verified, nil
}

func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// keyFor adapts the signer's verification step to the parser's keyfunc
// contract. The parser has already pinned the algorithm via WithValidMethods.
func (s *jwtService) keyFor(*jwt.Token) (any, error) {
	return s.signer.VerificationKey(), nil
}

func mapVerifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domainerrors.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired
	default:
		return domainerrors.ErrTokenMalformed
	}
}
