package console

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/editor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(80, 16)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeysMapToButtons(t *testing.T) {
	c := New(newScreen(t), 8)
	events := []tcell.Event{
		key(tcell.KeyUp), key(tcell.KeyDown), key(tcell.KeyEnter),
		key(tcell.KeyPgUp), char('+'), key(tcell.KeyPgDn), char('-'), char('x'),
		key(tcell.KeyTab),
	}
	for _, ev := range events {
		c.HandleEvent(ev)
	}

	want := map[editor.Button]int{
		editor.CursorUp: 1, editor.CursorDown: 1, editor.Toggle: 1,
		editor.RankUp: 2, editor.RankDown: 2, editor.Reset: 1,
	}
	for b, n := range want {
		for i := 0; i < n; i++ {
			if !c.Pressed(b) {
				t.Fatalf("%s: expected press %d of %d", b, i+1, n)
			}
		}
		if c.Pressed(b) {
			t.Fatalf("%s: press should be consumed", b)
		}
	}
	if !c.Toggled() || c.Toggled() {
		t.Fatal("expected exactly one mode toggle")
	}
}

func TestUnboundRunesAndQuit(t *testing.T) {
	c := New(newScreen(t), 8)
	var got []rune
	quits := 0
	c.OnRune(func(r rune) { got = append(got, r) })
	c.OnQuit(func() { quits++ })

	c.HandleEvent(char('1'))
	c.HandleEvent(char('e'))
	c.HandleEvent(char('x'))
	c.HandleEvent(key(tcell.KeyEscape))
	c.HandleEvent(key(tcell.KeyCtrlC))

	if string(got) != "1e" {
		t.Fatalf("expected pokes %q, got %q", "1e", string(got))
	}
	if quits != 2 {
		t.Fatalf("expected 2 quit requests, got %d", quits)
	}
}

func TestPumpDrainsQueue(t *testing.T) {
	c := New(newScreen(t), 8)
	c.events <- key(tcell.KeyTab)
	c.events <- key(tcell.KeyDown)
	c.Pump()
	if !c.Toggled() || !c.Pressed(editor.CursorDown) {
		t.Fatal("queued events should be applied by Pump")
	}
	c.Pump() // empty queue returns immediately
}

func TestEditorRendersOnScreen(t *testing.T) {
	screen := newScreen(t)
	reg := behavior.NewRegistry(behavior.GUIHierarchy(), rand.New(rand.NewPCG(1, 2)))
	c := New(screen, reg.Len())
	ed := editor.New(reg, c, c)
	ed.Enter()

	first, _ := reg.At(0)
	line := row(screen, 0)
	if !strings.HasPrefix(line, ">"+first.Label) || !strings.HasSuffix(line, "Inactive<") {
		t.Fatalf("unexpected cursor row %q", line)
	}
	legend := row(screen, reg.Len()+1)
	if !strings.Contains(legend, "[Enter] Activate") || !strings.Contains(legend, "[Up] ▲") {
		t.Fatalf("unexpected legend row %q", legend)
	}
	if strings.Contains(legend, "PgUp") {
		t.Fatalf("rank legends should be hidden on a disabled row: %q", legend)
	}

	c.HandleEvent(key(tcell.KeyEnter))
	ed.Poll()
	legend = row(screen, reg.Len()+1)
	if !strings.Contains(legend, "[Enter] Deactivate") || !strings.Contains(legend, "[PgUp] Move Up") {
		t.Fatalf("unexpected legend row after toggle %q", legend)
	}

	ed.RenderOperating()
	if got := row(screen, 0); got != " "+first.Label {
		t.Fatalf("operating row: got %q", got)
	}
	if got := row(screen, reg.Len()+1); got != "" {
		t.Fatalf("legends should be cleared, got %q", got)
	}
}

func TestObserveWritesStatus(t *testing.T) {
	screen := newScreen(t)
	c := New(screen, 8)
	b := behavior.Behavior{Label: "AVOID", Kind: behavior.Avoid}
	c.Observe(arbiter.Decision{
		Outcome:  arbiter.OutcomeActed,
		Behavior: &b,
		Command:  motion.Drive(0.6, -0.6, 0.1),
		Snapshot: sensor.Snapshot{LeftRange: 1800, Front: sensor.Contacts{Left: true}},
	})

	status := row(screen, 11)
	if !strings.Contains(status, "AVOID") || !strings.Contains(status, "L +0.60 R -0.60") {
		t.Fatalf("unexpected status %q", status)
	}
	if got := row(screen, 12); !strings.Contains(got, "1800") || !strings.Contains(got, "front L--") {
		t.Fatalf("unexpected sensor row %q", got)
	}

	c.Observe(arbiter.Decision{Outcome: arbiter.OutcomeSuspended, At: time.Now()})
	if got := row(screen, 11); !strings.HasPrefix(got, "editing") {
		t.Fatalf("expected editing status, got %q", got)
	}
}

func TestFormatSnapshot(t *testing.T) {
	got := FormatSnapshot(sensor.Snapshot{
		LeftPhoto: 100, RightPhoto: 400,
		Back: sensor.Contacts{Center: true, Right: true},
	})
	want := "photo  100  400  range    0    0  front ---  back -CR"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
