package kernel

import "time"

// Clock supplies the current calendar date. Entities never read the wall clock
// directly so that date comparisons stay deterministic under test.
type Clock interface {
	Today() Date
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Today returns the current local date.
func (SystemClock) Today() Date {
	return DateOf(time.Now())
}

// FixedClock always returns the same date.
type FixedClock struct {
	date Date
}

// NewFixedClock creates a clock frozen at date.
func NewFixedClock(date Date) FixedClock {
	return FixedClock{date: date}
}

// Today returns the frozen date.
func (c FixedClock) Today() Date {
	return c.date
}
