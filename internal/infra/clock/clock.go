// Package clock provides the system clock implementation of the domain
// Clock interface.
package clock

import (
	"time"

	"stayhub/internal/domain/service"
)

type systemClock struct{}

// New returns a Clock reading the system time.
func New() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
