// Package clock supplies the current time to code that needs "today".
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Used by tests and --as-of.
type Fixed struct {
	T time.Time
}

// Now implements Clock.
func (f Fixed) Now() time.Time { return f.T }

// At returns a Fixed clock at local midday of the given date.
func At(year int, month time.Month, day int) Fixed {
	return Fixed{T: time.Date(year, month, day, 12, 0, 0, 0, time.Local)}
}
