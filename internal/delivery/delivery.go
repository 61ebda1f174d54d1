// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a long-running transport server driven by the application
// lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or the context is canceled.
	Serve(ctx context.Context) error
}
