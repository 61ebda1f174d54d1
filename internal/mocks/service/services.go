// Package service provides test doubles for the domain service interfaces.
package service

import (
	"context"
	"time"

	"stayhub/internal/domain/entity"
	domainsvc "stayhub/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(identity *entity.Identity, tokenType domainsvc.TokenType) (string, error) {
	args := m.Called(identity, tokenType)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssuePair(identity *entity.Identity) (string, string, error) {
	args := m.Called(identity)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) Verify(tokenString string) (*domainsvc.VerifiedClaims, error) {
	args := m.Called(tokenString)

	return claimsResult(args)
}

func (m *MockTokenService) VerifyTyped(tokenString string, want domainsvc.TokenType) (*domainsvc.VerifiedClaims, error) {
	args := m.Called(tokenString, want)

	return claimsResult(args)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

func claimsResult(args mock.Arguments) (*domainsvc.VerifiedClaims, error) {
	var claims *domainsvc.VerifiedClaims
	if v := args.Get(0); v != nil {
		claims = v.(*domainsvc.VerifiedClaims)
	}

	return claims, args.Error(1)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockFederatedVerifier is a mock implementation of service.FederatedVerifier.
type MockFederatedVerifier struct {
	mock.Mock
}

func (m *MockFederatedVerifier) VerifyIDToken(ctx context.Context, idToken string) (*domainsvc.FederatedAssertion, error) {
	args := m.Called(ctx, idToken)

	var assertion *domainsvc.FederatedAssertion
	if v := args.Get(0); v != nil {
		assertion = v.(*domainsvc.FederatedAssertion)
	}

	return assertion, args.Error(1)
}
