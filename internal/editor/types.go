package editor

// #region buttons

// Button is one of the editor's physical buttons.
type Button int

const (
	CursorUp Button = iota
	CursorDown
	Toggle
	RankUp
	RankDown
	Reset
)

// AllButtons lists the buttons in polling priority order.
func AllButtons() []Button {
	return []Button{CursorUp, CursorDown, Toggle, RankUp, RankDown, Reset}
}

func (b Button) String() string {
	switch b {
	case CursorUp:
		return "cursor-up"
	case CursorDown:
		return "cursor-down"
	case Toggle:
		return "toggle"
	case RankUp:
		return "rank-up"
	case RankDown:
		return "rank-down"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Buttons reports button presses. Pressed consumes the press.
type Buttons interface {
	Pressed(b Button) bool
}

// #endregion buttons

// #region display

// Display is a character grid with per-button legends.
type Display interface {
	Clear()
	DrawText(x, y int, s string)
	SetLegend(b Button, text string)
	Flush()
}

// #endregion display

// #region layout

// Column positions of the hierarchy table.
const (
	colCursorLeft  = 0
	colLabel       = 1
	colStatus      = 17
	colCursorRight = 25
)

// rankStep moves an enabled entry past exactly one neighbour.
const rankStep = 2

// #endregion layout
