// Package sim provides in-memory stand-ins for the robot board and clock,
// used by the desktop controller and by tests.
package sim

import "sort"

// #region board

// Servo is the last state written to one actuator channel.
type Servo struct {
	Enabled bool
	Target  int
	Writes  int
}

// Write is one SetTarget call, in call order.
type Write struct {
	Channel int
	Value   int
}

// Board holds analog and digital port values and records actuator writes.
// Unset analog ports read 0; unset digital ports read idle.
type Board struct {
	analog      map[int]int
	digital     map[int]bool
	digitalIdle bool
	servos      map[int]*Servo
	writes      []Write
}

// NewBoard creates a board whose unset digital ports read digitalIdle.
// Use true for active-low bumpers so that nothing reads as pressed.
func NewBoard(digitalIdle bool) *Board {
	return &Board{
		analog:      make(map[int]int),
		digital:     make(map[int]bool),
		digitalIdle: digitalIdle,
		servos:      make(map[int]*Servo),
	}
}

// #endregion board

// #region sensors

// SetAnalog sets the value returned for an analog port.
func (b *Board) SetAnalog(pin, value int) {
	b.analog[pin] = value
}

// SetDigital sets the level returned for a digital port.
func (b *Board) SetDigital(pin int, level bool) {
	b.digital[pin] = level
}

// ToggleDigital flips a digital port and returns the new level.
func (b *Board) ToggleDigital(pin int) bool {
	level := !b.ReadDigital(pin)
	b.digital[pin] = level
	return level
}

// ResetDigital returns every digital port to idle.
func (b *Board) ResetDigital() {
	b.digital = make(map[int]bool)
}

// ReadAnalog implements sensor.AnalogReader.
func (b *Board) ReadAnalog(pin int) int {
	return b.analog[pin]
}

// ReadDigital implements sensor.DigitalReader.
func (b *Board) ReadDigital(pin int) bool {
	if level, ok := b.digital[pin]; ok {
		return level
	}
	return b.digitalIdle
}

// #endregion sensors

// #region actuators

// Enable implements motion.Actuator.
func (b *Board) Enable(channel int) {
	b.servo(channel).Enabled = true
}

// Disable implements motion.Actuator.
func (b *Board) Disable(channel int) {
	b.servo(channel).Enabled = false
}

// SetTarget implements motion.Actuator.
func (b *Board) SetTarget(channel, value int) {
	s := b.servo(channel)
	s.Target = value
	s.Writes++
	b.writes = append(b.writes, Write{Channel: channel, Value: value})
}

// Servo returns a copy of the state of one channel.
func (b *Board) Servo(channel int) Servo {
	if s, ok := b.servos[channel]; ok {
		return *s
	}
	return Servo{}
}

// Channels lists every channel that has been touched, ascending.
func (b *Board) Channels() []int {
	out := make([]int, 0, len(b.servos))
	for ch := range b.servos {
		out = append(out, ch)
	}
	sort.Ints(out)
	return out
}

// Writes returns all SetTarget calls so far.
func (b *Board) Writes() []Write {
	return append([]Write(nil), b.writes...)
}

// ClearWrites forgets recorded writes without touching servo state.
func (b *Board) ClearWrites() {
	b.writes = nil
}

func (b *Board) servo(channel int) *Servo {
	s, ok := b.servos[channel]
	if !ok {
		s = &Servo{}
		b.servos[channel] = s
	}
	return s
}

// #endregion actuators
