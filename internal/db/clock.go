package db

import "time"

// Clock supplies the instants stamped onto record starts and stops.
// Injecting it keeps scenario tests deterministic; production code uses
// the wall clock.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// Now returns the current local time.
func (WallClock) Now() time.Time { return time.Now() }
