package service

import "context"

// FederatedAssertion is the verified identity statement produced by a
// federated provider's ID token. Email and SubjectID are mandatory; the
// linking resolver rejects assertions missing either.
type FederatedAssertion struct {
	SubjectID     string // Provider-specific subject id (e.g. Google's 'sub' claim).
	Email         string // The asserted email address.
	Name          string // Display name supplied by the provider.
	AvatarURL     string // Profile picture URL supplied by the provider.
	EmailVerified bool   // Whether the provider vouches for the email.
}

// FederatedVerifier verifies a federated provider's ID token and extracts
// the identity assertion. Implementations own the provider-specific
// signature and audience checks.
type FederatedVerifier interface {
	// VerifyIDToken validates the raw ID token and returns the assertion.
	VerifyIDToken(ctx context.Context, idToken string) (*FederatedAssertion, error)
}
