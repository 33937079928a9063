// Package editor lets an operator reorder and toggle behaviors with six
// buttons while the arbiter is suspended.
package editor

import "github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"

// #region editor

// Editor owns the registry while the robot is in editing mode.
type Editor struct {
	registry   *behavior.Registry
	display    Display
	buttons    Buttons
	cursor     int
	randomized bool
}

// New creates an editor over registry.
func New(registry *behavior.Registry, display Display, buttons Buttons) *Editor {
	return &Editor{registry: registry, display: display, buttons: buttons}
}

// Cursor returns the highlighted row.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Used reports whether the editor has ever been entered.
func (e *Editor) Used() bool {
	return e.randomized
}

// Enter takes over the registry and draws it. The first entry shuffles and
// disables the hierarchy so the startup order cannot be read off the screen.
func (e *Editor) Enter() {
	if !e.randomized {
		e.registry.RandomizeAndDisableAll()
		e.randomized = true
	}
	e.cursor = e.registry.CycleNext(e.cursor, 0)
	e.Render()
}

// Poll applies at most one button press and redraws if anything changed.
func (e *Editor) Poll() bool {
	if !e.apply() {
		return false
	}
	e.Render()
	return true
}

func (e *Editor) apply() bool {
	r := e.registry
	switch {
	case e.buttons.Pressed(CursorUp):
		e.cursor = r.CycleNext(e.cursor, -1)
	case e.buttons.Pressed(CursorDown):
		e.cursor = r.CycleNext(e.cursor, 1)
	case e.buttons.Pressed(Toggle):
		e.cursor = r.ToggleEnabled(e.cursor)
	case e.buttons.Pressed(RankUp):
		e.cursor = r.AdjustRank(e.cursor, -rankStep)
	case e.buttons.Pressed(RankDown):
		e.cursor = r.AdjustRank(e.cursor, rankStep)
	case e.buttons.Pressed(Reset):
		r.ResetAll()
	default:
		return false
	}
	return true
}

// #endregion editor

// #region render

// Render draws the full hierarchy with the cursor marks and legends.
func (e *Editor) Render() {
	d := e.display
	d.Clear()
	for i, b := range e.registry.All() {
		left, right := " ", " "
		if i == e.cursor {
			left, right = ">", "<"
		}
		status := "Inactive"
		if b.Enabled {
			status = "Active"
		}
		d.DrawText(colCursorLeft, i, left)
		d.DrawText(colLabel, i, b.Label)
		d.DrawText(colStatus, i, status)
		d.DrawText(colCursorRight, i, right)
	}
	e.renderLegends()
	d.Flush()
}

func (e *Editor) renderLegends() {
	d := e.display
	current, ok := e.registry.At(e.cursor)
	switch {
	case ok && current.Enabled:
		d.SetLegend(Toggle, "Deactivate")
		d.SetLegend(RankUp, "Move Up")
		d.SetLegend(RankDown, "Move Down")
	default:
		d.SetLegend(Toggle, "Activate")
		d.SetLegend(RankUp, "")
		d.SetLegend(RankDown, "")
	}
	d.SetLegend(CursorUp, "▲")
	d.SetLegend(CursorDown, "▼")
	d.SetLegend(Reset, "Reset")
}

// RenderOperating lists the active hierarchy after the operator returns to
// operating mode. It draws nothing until the editor has been used.
func (e *Editor) RenderOperating() {
	if !e.randomized {
		return
	}
	d := e.display
	d.Clear()
	for _, b := range AllButtons() {
		d.SetLegend(b, "")
	}
	for i, b := range e.registry.Enabled() {
		d.DrawText(0, i, " "+b.Label)
	}
	d.Flush()
}

// #endregion render
