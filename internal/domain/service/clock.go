package service

import "time"

// Clock abstracts the current time so token expiry logic is testable
// without sleeping or patching globals.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
