package usecase

import "context"

// FederatedLoginInput carries the raw ID token returned by the federated
// provider's consent flow.
type FederatedLoginInput struct {
	IDToken string
}

// FederationUsecase resolves a verified federated assertion against the
// identity store: creating, linking or re-authenticating an account, then
// issuing a token pair. Tokens are only issued once the store transaction
// has committed.
type FederationUsecase interface {
	FederatedLogin(ctx context.Context, input *FederatedLoginInput) (*AuthOutput, error)
}
