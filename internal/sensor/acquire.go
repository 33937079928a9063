package sensor

// #region board-source

// BoardSource reads a Snapshot from a board using a fixed pin map.
type BoardSource struct {
	reader   Reader
	pins     PinMap
	polarity Polarity
}

// NewBoardSource creates a Source backed by reader.
func NewBoardSource(reader Reader, pins PinMap, polarity Polarity) *BoardSource {
	return &BoardSource{reader: reader, pins: pins, polarity: polarity}
}

// Acquire reads every sensor before returning, so no field of the result is
// left over from a previous cycle.
func (b *BoardSource) Acquire() Snapshot {
	return Snapshot{
		RightPhoto: b.reader.ReadAnalog(b.pins.RightPhoto),
		LeftPhoto:  b.reader.ReadAnalog(b.pins.LeftPhoto),
		RightRange: b.reader.ReadAnalog(b.pins.RightRange),
		LeftRange:  b.reader.ReadAnalog(b.pins.LeftRange),
		Front:      b.readBank(b.pins.Front),
		Back:       b.readBank(b.pins.Back),
	}
}

// #endregion board-source

// #region helpers

func (b *BoardSource) readBank(bank BankPins) Contacts {
	return Contacts{
		Left:   b.readContact(bank.Left),
		Center: b.readContact(bank.Center),
		Right:  b.readContact(bank.Right),
	}
}

func (b *BoardSource) readContact(pin int) bool {
	if pin == NoPin {
		return false
	}
	return b.polarity.Triggered(b.reader.ReadDigital(pin))
}

// #endregion helpers

// #region fixed-source

// Sequence replays a fixed list of snapshots, repeating the last one once
// the list is exhausted. An empty Sequence yields zero snapshots.
type Sequence struct {
	frames []Snapshot
	next   int
}

// NewSequence creates a Source over frames.
func NewSequence(frames ...Snapshot) *Sequence {
	return &Sequence{frames: frames}
}

// Acquire returns the next frame.
func (s *Sequence) Acquire() Snapshot {
	if len(s.frames) == 0 {
		return Snapshot{}
	}
	i := s.next
	if i >= len(s.frames) {
		i = len(s.frames) - 1
	} else {
		s.next++
	}
	return s.frames[i]
}

// Set replaces the frame list and rewinds.
func (s *Sequence) Set(frames ...Snapshot) {
	s.frames = frames
	s.next = 0
}

// #endregion fixed-source
