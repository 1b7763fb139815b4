package app

import (
	"time"

	"github.com/webinardesk/webinardesk/internal/domain"
)

// Compile-time checks: both clocks implement domain.Clock.
var (
	_ domain.Clock = (*SystemClock)(nil)
	_ domain.Clock = (*FixedClock)(nil)
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// NewSystemClock creates the production time source.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Used to pin "now" in tests.
type FixedClock struct {
	Instant time.Time
}

// NewFixedClock creates a clock frozen at the given instant.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{Instant: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	return c.Instant
}
