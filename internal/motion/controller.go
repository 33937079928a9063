package motion

import (
	"fmt"
	"math"
	"time"
)

// #region deadline

// Deadline gates how often a new command may be issued. The zero value has
// never been armed and counts as elapsed.
type Deadline struct {
	ArmedAt  time.Time
	Duration time.Duration
	armed    bool
}

// Arm restarts the deadline at now.
func (d *Deadline) Arm(now time.Time, duration time.Duration) {
	d.ArmedAt = now
	d.Duration = duration
	d.armed = true
}

// Elapsed reports whether now is strictly past the armed window.
func (d Deadline) Elapsed(now time.Time) bool {
	if !d.armed {
		return true
	}
	return now.Sub(d.ArmedAt) > d.Duration
}

// Armed reports whether a command has been issued yet.
func (d Deadline) Armed() bool {
	return d.armed
}

// #endregion deadline

// #region controller

// velocitySpan is the normalized wheel velocity range.
var velocitySpan = Span{Low: -1, High: 1}

// Controller turns normalized commands into actuator targets and owns the
// deadline. It never waits for a command to finish.
type Controller struct {
	actuator Actuator
	clock    Clock
	config   DriveConfig
	left     LinearMap
	right    LinearMap
	deadline Deadline
	last     Command
}

// NewController validates the drive configuration. The right wheel is mounted
// mirrored, so its mapping runs high to low.
func NewController(actuator Actuator, clock Clock, config DriveConfig) (*Controller, error) {
	if config.Native.Low == config.Native.High {
		return nil, fmt.Errorf("native range: %w", ErrDegenerateSpan)
	}
	left, err := NewLinearMap(velocitySpan, config.Native)
	if err != nil {
		return nil, err
	}
	right, err := NewLinearMap(velocitySpan, Span{Low: config.Native.High, High: config.Native.Low})
	if err != nil {
		return nil, err
	}
	return &Controller{
		actuator: actuator,
		clock:    clock,
		config:   config,
		left:     left,
		right:    right,
	}, nil
}

// Issue clamps, maps and writes both wheels, then re-arms the deadline to
// now + cmd.Duration. The previous command is simply superseded.
func (c *Controller) Issue(cmd Command) {
	if cmd.Duration < 0 {
		cmd.Duration = 0
	}
	cmd.Left = clamp(cmd.Left)
	cmd.Right = clamp(cmd.Right)

	c.deadline.Arm(c.clock.Now(), cmd.Duration)
	c.last = cmd

	c.actuator.SetTarget(c.config.LeftChannel, toNative(c.left.Apply(cmd.Left)))
	c.actuator.SetTarget(c.config.RightChannel, toNative(c.right.Apply(cmd.Right)))
}

// Drive issues a command with the duration given in seconds.
func (c *Controller) Drive(left, right, seconds float64) {
	c.Issue(Drive(left, right, seconds))
}

// Elapsed reports whether the last command's window has passed.
func (c *Controller) Elapsed() bool {
	return c.deadline.Elapsed(c.clock.Now())
}

// Deadline returns the current deadline.
func (c *Controller) Deadline() Deadline {
	return c.deadline
}

// Last returns the most recently issued command.
func (c *Controller) Last() Command {
	return c.last
}

// Enable powers both wheel channels.
func (c *Controller) Enable() {
	c.actuator.Enable(c.config.LeftChannel)
	c.actuator.Enable(c.config.RightChannel)
}

// Disable cuts power to both wheel channels.
func (c *Controller) Disable() {
	c.actuator.Disable(c.config.LeftChannel)
	c.actuator.Disable(c.config.RightChannel)
}

// Halt writes zero velocity without touching the deadline.
func (c *Controller) Halt() {
	c.last = Command{}
	c.actuator.SetTarget(c.config.LeftChannel, toNative(c.left.Apply(0)))
	c.actuator.SetTarget(c.config.RightChannel, toNative(c.right.Apply(0)))
}

// NativeTargets returns the native values a command would produce.
func (c *Controller) NativeTargets(cmd Command) (left, right int) {
	return toNative(c.left.Apply(clamp(cmd.Left))), toNative(c.right.Apply(clamp(cmd.Right)))
}

// #endregion controller

func toNative(v float64) int {
	return int(math.Round(v))
}
