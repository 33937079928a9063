package sim

import "time"

// Clock is a manually advanced time source.
type Clock struct {
	now time.Time
}

// NewClock creates a clock that starts at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now implements motion.Clock.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to t.
func (c *Clock) Set(t time.Time) {
	c.now = t
}
