package motion

import (
	"errors"
	"time"
)

// #region collaborators

// Actuator drives the wheel servos. Values are in the actuator's native range.
type Actuator interface {
	Enable(channel int)
	Disable(channel int)
	SetTarget(channel, value int)
}

// Clock supplies monotonic time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process monotonic clock.
type SystemClock struct{}

// Now returns time.Now, which carries a monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// #endregion collaborators

// #region command

// Command is a normalized wheel velocity pair held for Duration.
type Command struct {
	Left     float64       `json:"left"`
	Right    float64       `json:"right"`
	Duration time.Duration `json:"duration"`
}

// Drive builds a Command from seconds.
func Drive(left, right, seconds float64) Command {
	return Command{
		Left:     left,
		Right:    right,
		Duration: time.Duration(seconds * float64(time.Second)),
	}
}

// IsStop reports whether both wheels are at rest.
func (c Command) IsStop() bool {
	return c.Left == 0 && c.Right == 0
}

// #endregion command

// #region config

// ErrDegenerateSpan is returned when a range has equal bounds and cannot be
// used as a remapping source.
var ErrDegenerateSpan = errors.New("degenerate span: low equals high")

// Span is a closed numeric range.
type Span struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// DriveConfig describes how the two wheels are wired.
type DriveConfig struct {
	LeftChannel  int  `yaml:"left_channel"`
	RightChannel int  `yaml:"right_channel"`
	Native       Span `yaml:"native"` // actuator range; Low is full reverse on the left wheel
}

// DefaultDriveConfig returns the wiring for the 0-2047 servo range.
func DefaultDriveConfig() DriveConfig {
	return DriveConfig{
		LeftChannel:  1,
		RightChannel: 0,
		Native:       Span{Low: 0, High: 2047},
	}
}

// #endregion config
