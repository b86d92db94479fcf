// Package clock lets stores stamp records with a time tests can pin
package clock

import "time"

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// New returns the wall clock
func New() Clock {
	return Func(time.Now)
}

// Fixed returns a clock stuck at at
func Fixed(at time.Time) Clock {
	return Func(func() time.Time { return at })
}
