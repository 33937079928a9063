package sensor

// #region readers

// AnalogReader returns the 10-bit reading of an analog port.
type AnalogReader interface {
	ReadAnalog(pin int) int
}

// DigitalReader returns the raw logic level of a digital port.
type DigitalReader interface {
	ReadDigital(pin int) bool
}

// Reader is the board-side acquisition surface the controller needs.
type Reader interface {
	AnalogReader
	DigitalReader
}

// Source produces one complete snapshot per control cycle.
type Source interface {
	Acquire() Snapshot
}

// #endregion readers

// #region snapshot

// Contacts holds the triggered state of one bumper bank. Center is false on
// robots without a center bumper.
type Contacts struct {
	Left   bool `json:"left"`
	Center bool `json:"center"`
	Right  bool `json:"right"`
}

// Any reports whether any bumper in the bank is triggered.
func (c Contacts) Any() bool {
	return c.Left || c.Center || c.Right
}

// Snapshot is the full set of sensor values for a single cycle.
// Photo readings grow as the light dims.
type Snapshot struct {
	LeftPhoto  int      `json:"left_photo"`
	RightPhoto int      `json:"right_photo"`
	LeftRange  int      `json:"left_range"`
	RightRange int      `json:"right_range"`
	Front      Contacts `json:"front"`
	Back       Contacts `json:"back"`
}

// #endregion snapshot

// #region pins

// NoPin marks a bumper position that is not wired.
const NoPin = -1

// BankPins maps one bumper bank to digital ports.
type BankPins struct {
	Left   int `yaml:"left"`
	Center int `yaml:"center"`
	Right  int `yaml:"right"`
}

// PinMap assigns every sensor to a board port.
type PinMap struct {
	LeftPhoto  int      `yaml:"left_photo"`
	RightPhoto int      `yaml:"right_photo"`
	LeftRange  int      `yaml:"left_range"`
	RightRange int      `yaml:"right_range"`
	Front      BankPins `yaml:"front"`
	Back       BankPins `yaml:"back"`
}

// GUIPins is the wiring used by the editable-hierarchy robot.
func GUIPins() PinMap {
	return PinMap{
		RightRange: 0,
		LeftRange:  1,
		RightPhoto: 2,
		LeftPhoto:  3,
		Front:      BankPins{Right: 0, Left: 1, Center: NoPin},
		Back:       BankPins{Right: 2, Left: 3, Center: NoPin},
	}
}

// PlainPins is the wiring used by the fixed-hierarchy robot, which carries a
// center bumper on each bank.
func PlainPins() PinMap {
	return PinMap{
		RightPhoto: 0,
		LeftPhoto:  1,
		RightRange: 2,
		LeftRange:  3,
		Front:      BankPins{Left: 5, Center: 3, Right: 4},
		Back:       BankPins{Left: 2, Center: 0, Right: 1},
	}
}

// #endregion pins

// #region polarity

// Polarity selects which raw logic level means a bumper is pressed.
type Polarity string

const (
	ActiveHigh Polarity = "active_high"
	ActiveLow  Polarity = "active_low"
)

// Triggered converts a raw level into the pressed state.
func (p Polarity) Triggered(level bool) bool {
	if p == ActiveLow {
		return !level
	}
	return level
}

// Valid reports whether p is a known polarity.
func (p Polarity) Valid() bool {
	return p == ActiveHigh || p == ActiveLow
}

// #endregion polarity
