package token

import (
	"stayhub/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer produces and checks the signature over a token's signing input
// (the dot-joined, base64url-encoded header and claims).
type Signer interface {
	// Alg returns the signature algorithm identifier placed in the header.
	Alg() string
	// Sign returns the raw signature over signingInput.
	Sign(signingInput string) ([]byte, error)
	// VerificationKey returns the key material handed to the token parser
	// for signature checking.
	VerificationKey() any
}

// hmacSigner signs with HMAC-SHA256 under a single shared secret. Both
// verification paths go through jwt's constant-time comparison.
type hmacSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

// NewHMACSigner builds an HS256 signer. An empty secret is refused
// outright rather than silently producing forgeable tokens.
func NewHMACSigner(secret string) (Signer, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}

	return &hmacSigner{
		method: jwt.SigningMethodHS256,
		secret: []byte(secret),
	}, nil
}

func (s *hmacSigner) Alg() string {
	return s.method.Alg()
}

func (s *hmacSigner) Sign(signingInput string) ([]byte, error) {
	sig, err := s.method.Sign(signingInput, s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "hmac sign")
	}

	return sig, nil
}

func (s *hmacSigner) VerificationKey() any {
	return s.secret
}
