package editor

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
)

// #region fakes

type gridDisplay struct {
	cells   map[[2]int]rune
	legends map[Button]string
	flushes int
}

func newGridDisplay() *gridDisplay {
	return &gridDisplay{cells: make(map[[2]int]rune), legends: make(map[Button]string)}
}

func (g *gridDisplay) Clear() { g.cells = make(map[[2]int]rune) }

func (g *gridDisplay) DrawText(x, y int, s string) {
	for i, r := range []rune(s) {
		g.cells[[2]int{x + i, y}] = r
	}
}

func (g *gridDisplay) SetLegend(b Button, text string) { g.legends[b] = text }

func (g *gridDisplay) Flush() { g.flushes++ }

func (g *gridDisplay) row(y int) string {
	var sb strings.Builder
	for x := 0; x < 30; x++ {
		if r, ok := g.cells[[2]int{x, y}]; ok {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

type queuedButtons struct {
	pending map[Button]int
}

func (q *queuedButtons) press(b Button) {
	if q.pending == nil {
		q.pending = make(map[Button]int)
	}
	q.pending[b]++
}

func (q *queuedButtons) Pressed(b Button) bool {
	if q.pending[b] == 0 {
		return false
	}
	q.pending[b]--
	return true
}

// #endregion fakes

func newTestEditor(t *testing.T) (*Editor, *behavior.Registry, *gridDisplay, *queuedButtons) {
	t.Helper()
	reg := behavior.NewRegistry(behavior.GUIHierarchy(), rand.New(rand.NewPCG(11, 13)))
	disp := newGridDisplay()
	btn := &queuedButtons{}
	return New(reg, disp, btn), reg, disp, btn
}

func TestEnterRandomizesOnlyOnce(t *testing.T) {
	e, reg, _, btn := newTestEditor(t)
	e.Enter()
	if reg.EnabledCount() != 0 {
		t.Fatal("first entry should disable everything")
	}
	btn.press(Toggle)
	e.Poll()
	order := reg.All()

	e.Enter()
	if reg.EnabledCount() != 1 {
		t.Fatal("second entry must not randomize again")
	}
	for i, b := range reg.All() {
		if b != order[i] {
			t.Fatal("second entry changed the order")
		}
	}
}

func TestRenderLayout(t *testing.T) {
	e, reg, disp, _ := newTestEditor(t)
	e.Enter()

	first, _ := reg.At(0)
	row := disp.row(0)
	if !strings.HasPrefix(row, ">"+first.Label) {
		t.Fatalf("row 0 should start with cursor and label, got %q", row)
	}
	if got := string([]rune(row)[colStatus : colStatus+8]); got != "Inactive" {
		t.Fatalf("expected Inactive at column %d, got %q", colStatus, got)
	}
	if r := []rune(row); r[colCursorRight] != '<' {
		t.Fatalf("expected right cursor at column %d, got %q", colCursorRight, row)
	}
	if strings.HasPrefix(disp.row(1), ">") {
		t.Fatal("only the cursor row is marked")
	}
	if disp.legends[Toggle] != "Activate" || disp.legends[RankUp] != "" {
		t.Fatalf("unexpected legends for disabled row: %v", disp.legends)
	}
	if disp.legends[Reset] != "Reset" || disp.legends[CursorUp] != "▲" {
		t.Fatalf("unexpected fixed legends: %v", disp.legends)
	}
}

func TestCursorWraps(t *testing.T) {
	e, reg, _, btn := newTestEditor(t)
	e.Enter()
	btn.press(CursorUp)
	e.Poll()
	if e.Cursor() != reg.Len()-1 {
		t.Fatalf("expected wrap to last row, got %d", e.Cursor())
	}
	btn.press(CursorDown)
	e.Poll()
	if e.Cursor() != 0 {
		t.Fatalf("expected wrap back to 0, got %d", e.Cursor())
	}
}

func TestToggleAndReorder(t *testing.T) {
	e, reg, disp, btn := newTestEditor(t)
	e.Enter()

	// Enable the first two rows.
	btn.press(Toggle)
	e.Poll()
	top, _ := reg.At(0)
	btn.press(CursorDown)
	e.Poll()
	btn.press(Toggle)
	e.Poll()
	second, _ := reg.At(1)
	if !top.Enabled || !second.Enabled || reg.EnabledCount() != 2 {
		t.Fatalf("expected two enabled entries, got %d", reg.EnabledCount())
	}
	if disp.legends[Toggle] != "Deactivate" || disp.legends[RankUp] != "Move Up" {
		t.Fatalf("unexpected legends for enabled row: %v", disp.legends)
	}

	// Move the second one above the first; the cursor follows it.
	btn.press(RankUp)
	e.Poll()
	now, _ := reg.At(0)
	if now.ID != second.ID || e.Cursor() != 0 {
		t.Fatalf("expected %q on top with cursor 0, got %q cursor %d", second.Label, now.Label, e.Cursor())
	}

	btn.press(RankDown)
	e.Poll()
	now, _ = reg.At(1)
	if now.ID != second.ID || e.Cursor() != 1 {
		t.Fatalf("expected %q back at 1, got %q cursor %d", second.Label, now.Label, e.Cursor())
	}
}

func TestResetDisablesAll(t *testing.T) {
	e, reg, _, btn := newTestEditor(t)
	e.Enter()
	btn.press(Toggle)
	e.Poll()
	btn.press(Reset)
	if !e.Poll() {
		t.Fatal("reset should report a change")
	}
	if reg.EnabledCount() != 0 {
		t.Fatal("reset should disable everything")
	}
}

func TestPollOnePressAtATime(t *testing.T) {
	e, _, disp, btn := newTestEditor(t)
	e.Enter()
	flushes := disp.flushes

	if e.Poll() {
		t.Fatal("no press should mean no change")
	}
	if disp.flushes != flushes {
		t.Fatal("idle poll must not redraw")
	}

	btn.press(CursorDown)
	btn.press(CursorDown)
	e.Poll()
	if e.Cursor() != 1 {
		t.Fatalf("expected one step per poll, got cursor %d", e.Cursor())
	}
	e.Poll()
	if e.Cursor() != 2 {
		t.Fatalf("expected queued press on next poll, got cursor %d", e.Cursor())
	}
}

func TestRenderOperatingListsEnabled(t *testing.T) {
	e, _, disp, btn := newTestEditor(t)

	e.RenderOperating()
	if disp.flushes != 0 {
		t.Fatal("operating console stays untouched before first edit")
	}

	e.Enter()
	btn.press(Toggle)
	e.Poll()
	btn.press(CursorDown)
	e.Poll()
	btn.press(CursorDown)
	e.Poll()
	btn.press(Toggle)
	e.Poll()

	e.RenderOperating()
	lines := []string{disp.row(0), disp.row(1), disp.row(2)}
	if !strings.HasPrefix(lines[0], " ") || lines[0] == "" || lines[1] == "" || lines[2] != "" {
		t.Fatalf("expected two listed behaviors, got %q", lines)
	}
	for _, b := range AllButtons() {
		if disp.legends[b] != "" {
			t.Fatalf("legend %v should be cleared, got %q", b, disp.legends[b])
		}
	}
}
