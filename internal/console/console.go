// Package console renders the editor and the robot status on a terminal and
// turns key presses into editor buttons, the mode toggle and sensor pokes.
package console

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/editor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

// #region types

type textOp struct {
	x, y int
	s    string
}

// keyLabels names the key bound to each editor button in the legend row.
var keyLabels = map[editor.Button]string{
	editor.CursorUp:   "Up",
	editor.CursorDown: "Down",
	editor.Toggle:     "Enter",
	editor.RankUp:     "PgUp",
	editor.RankDown:   "PgDn",
	editor.Reset:      "x",
}

// Console is a tcell screen split into a table area, a legend row and two
// status rows. Everything except the event listener runs on the caller's
// goroutine.
type Console struct {
	screen tcell.Screen
	events chan tcell.Event

	ops     []textOp
	legends map[editor.Button]string
	status  string
	sensors string

	legendRow int
	statusRow int

	presses map[editor.Button]int
	toggles int

	onRune func(rune)
	onQuit func()
}

// New creates a console on an initialised screen. rows is the height of the
// table area and should be at least the hierarchy length.
func New(screen tcell.Screen, rows int) *Console {
	return &Console{
		screen:    screen,
		events:    make(chan tcell.Event, 100),
		legends:   make(map[editor.Button]string),
		legendRow: rows + 1,
		statusRow: rows + 3,
		presses:   make(map[editor.Button]int),
	}
}

// OnRune sets the handler for printable keys with no console binding.
func (c *Console) OnRune(f func(rune)) {
	c.onRune = f
}

// OnQuit sets the handler for Esc and Ctrl-C.
func (c *Console) OnQuit(f func()) {
	c.onQuit = f
}

// #endregion types

// #region input

// Listen forwards terminal events to the console until the screen is
// finalised. Events are only handled by Pump.
func (c *Console) Listen() {
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			c.events <- ev
		}
	}()
}

// Pump handles every queued event without blocking.
func (c *Console) Pump() {
	for {
		select {
		case ev := <-c.events:
			c.HandleEvent(ev)
		default:
			return
		}
	}
}

// HandleEvent applies one terminal event.
func (c *Console) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.screen.Sync()
		c.Flush()
	case *tcell.EventKey:
		c.handleKey(ev)
	}
}

func (c *Console) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		c.presses[editor.CursorUp]++
	case tcell.KeyDown:
		c.presses[editor.CursorDown]++
	case tcell.KeyEnter:
		c.presses[editor.Toggle]++
	case tcell.KeyPgUp:
		c.presses[editor.RankUp]++
	case tcell.KeyPgDn:
		c.presses[editor.RankDown]++
	case tcell.KeyTab:
		c.toggles++
	case tcell.KeyEscape, tcell.KeyCtrlC:
		if c.onQuit != nil {
			c.onQuit()
		}
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case '+':
			c.presses[editor.RankUp]++
		case '-':
			c.presses[editor.RankDown]++
		case 'x':
			c.presses[editor.Reset]++
		default:
			if c.onRune != nil {
				c.onRune(r)
			}
		}
	}
}

// Pressed implements editor.Buttons.
func (c *Console) Pressed(b editor.Button) bool {
	if c.presses[b] == 0 {
		return false
	}
	c.presses[b]--
	return true
}

// Toggled implements supervisor.ModeSwitch.
func (c *Console) Toggled() bool {
	if c.toggles == 0 {
		return false
	}
	c.toggles--
	return true
}

// #endregion input

// #region display

// Clear implements editor.Display. Legends are kept until overwritten.
func (c *Console) Clear() {
	c.ops = c.ops[:0]
}

// DrawText implements editor.Display.
func (c *Console) DrawText(x, y int, s string) {
	c.ops = append(c.ops, textOp{x: x, y: y, s: s})
}

// SetLegend implements editor.Display. An empty text hides the legend.
func (c *Console) SetLegend(b editor.Button, text string) {
	if text == "" {
		delete(c.legends, b)
		return
	}
	c.legends[b] = text
}

// Flush redraws the whole screen.
func (c *Console) Flush() {
	c.screen.Clear()
	for _, op := range c.ops {
		c.put(op.x, op.y, op.s)
	}
	x := 0
	for _, b := range editor.AllButtons() {
		text, ok := c.legends[b]
		if !ok {
			continue
		}
		x = c.put(x, c.legendRow, fmt.Sprintf("[%s] %s", keyLabels[b], text)) + 2
	}
	c.put(0, c.statusRow, c.status)
	c.put(0, c.statusRow+1, c.sensors)
	c.screen.Show()
}

// put writes s at (x, y) and returns the column after it.
func (c *Console) put(x, y int, s string) int {
	for _, r := range s {
		c.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// #endregion display

// #region status

// Observe implements arbiter.Observer. The status rows are redrawn only when
// their text changes.
func (c *Console) Observe(d arbiter.Decision) {
	status := c.status
	sensors := c.sensors
	switch {
	case d.Outcome == arbiter.OutcomeSuspended:
		status = "editing    wheels off"
	case d.Outcome.Issued():
		status = fmt.Sprintf("operating  %-16s L %+.2f R %+.2f  %.2fs",
			d.Label(), d.Command.Left, d.Command.Right, d.Command.Duration.Seconds())
	}
	if d.Outcome != arbiter.OutcomeSuspended {
		sensors = FormatSnapshot(d.Snapshot)
	}
	if status == c.status && sensors == c.sensors {
		return
	}
	c.status, c.sensors = status, sensors
	c.Flush()
}

// FormatSnapshot renders a snapshot on one line.
func FormatSnapshot(s sensor.Snapshot) string {
	return fmt.Sprintf("photo %4d %4d  range %4d %4d  front %s  back %s",
		s.LeftPhoto, s.RightPhoto, s.LeftRange, s.RightRange,
		formatContacts(s.Front), formatContacts(s.Back))
}

func formatContacts(c sensor.Contacts) string {
	mark := func(on bool, r byte) byte {
		if on {
			return r
		}
		return '-'
	}
	return string([]byte{mark(c.Left, 'L'), mark(c.Center, 'C'), mark(c.Right, 'R')})
}

// #endregion status
