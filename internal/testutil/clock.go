// Package testutil holds shared test helpers.
package testutil

import "time"

// Clock is a manually driven clock for deterministic scenario tests.
// It satisfies the database's clock interface: Now returns the pinned
// instant until Advance or Set moves it.
type Clock struct {
	now time.Time
}

// NewClock returns a clock pinned to the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the pinned instant.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set pins the clock to a specific instant.
func (c *Clock) Set(t time.Time) { c.now = t }
