// Package lifecycle holds shared application lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown steps such as database pings
// and HTTP server drain.
const DefaultTimeout = 30 * time.Second
