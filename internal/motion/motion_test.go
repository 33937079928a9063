package motion

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/sim"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, config DriveConfig) (*Controller, *sim.Board, *sim.Clock) {
	t.Helper()
	board := sim.NewBoard(false)
	clock := sim.NewClock(epoch)
	c, err := NewController(board, clock, config)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, board, clock
}

func TestMapBoundariesAndMidpoint(t *testing.T) {
	if got := Map(0.0, -1.0, 1.0, 0, 2047); math.Abs(got-1023.5) > 1e-9 {
		t.Fatalf("midpoint: expected 1023.5, got %v", got)
	}
	if got := Map(-1.0, -1.0, 1.0, 0, 2047); got != 0 {
		t.Fatalf("low bound: expected 0, got %v", got)
	}
	if got := Map(1.0, -1.0, 1.0, 0, 2047); got != 2047 {
		t.Fatalf("high bound: expected 2047, got %v", got)
	}
	if got := Map(1.0, -1.0, 1.0, 2047, 0); got != 0 {
		t.Fatalf("mirrored high bound: expected 0, got %v", got)
	}
}

func TestMapDegenerateIsNaN(t *testing.T) {
	if got := Map(0.3, 1, 1, 0, 2047); !math.IsNaN(got) {
		t.Fatalf("expected NaN sentinel, got %v", got)
	}
	if _, err := NewLinearMap(Span{Low: 2, High: 2}, Span{Low: 0, High: 1}); !errors.Is(err, ErrDegenerateSpan) {
		t.Fatalf("expected ErrDegenerateSpan, got %v", err)
	}
}

func TestNewControllerRejectsDegenerateNative(t *testing.T) {
	cfg := DefaultDriveConfig()
	cfg.Native = Span{Low: 1000, High: 1000}
	_, err := NewController(sim.NewBoard(false), sim.NewClock(epoch), cfg)
	if !errors.Is(err, ErrDegenerateSpan) {
		t.Fatalf("expected ErrDegenerateSpan, got %v", err)
	}
}

func TestIssueMapsMirroredWheels(t *testing.T) {
	c, board, _ := newTestController(t, DefaultDriveConfig())
	c.Drive(1, 1, 0.5)

	if got := board.Servo(1).Target; got != 2047 {
		t.Fatalf("left full forward: expected 2047, got %d", got)
	}
	if got := board.Servo(0).Target; got != 0 {
		t.Fatalf("right full forward (mirrored): expected 0, got %d", got)
	}

	c.Drive(-1, -1, 0.5)
	if board.Servo(1).Target != 0 || board.Servo(0).Target != 2047 {
		t.Fatalf("reverse mapping wrong: left=%d right=%d", board.Servo(1).Target, board.Servo(0).Target)
	}
}

func TestIssueClampsVelocity(t *testing.T) {
	c, board, _ := newTestController(t, DefaultDriveConfig())
	c.Drive(3.5, -9, 0.1)
	if board.Servo(1).Target != 2047 || board.Servo(0).Target != 2047 {
		t.Fatalf("expected clamped extremes, got left=%d right=%d", board.Servo(1).Target, board.Servo(0).Target)
	}
	if last := c.Last(); last.Left != 1 || last.Right != -1 {
		t.Fatalf("expected clamped command recorded, got %+v", last)
	}
}

func TestIssueNaNVelocityIsNeutral(t *testing.T) {
	c, board, _ := newTestController(t, DefaultDriveConfig())
	nl, nr := c.NativeTargets(Command{})
	c.Drive(math.NaN(), math.NaN(), 0.1)
	if board.Servo(1).Target != nl || board.Servo(0).Target != nr {
		t.Fatalf("expected neutral %d/%d, got left=%d right=%d", nl, nr, board.Servo(1).Target, board.Servo(0).Target)
	}
	if last := c.Last(); last.Left != 0 || last.Right != 0 {
		t.Fatalf("expected zero command recorded, got %+v", last)
	}
}

func TestIssueAlternateNativeRange(t *testing.T) {
	cfg := DefaultDriveConfig()
	cfg.Native = Span{Low: 850, High: 1250}
	c, board, _ := newTestController(t, cfg)
	c.Drive(0, 0, 0.25)
	if board.Servo(1).Target != 1050 || board.Servo(0).Target != 1050 {
		t.Fatalf("expected neutral 1050, got left=%d right=%d", board.Servo(1).Target, board.Servo(0).Target)
	}
	l, r := c.NativeTargets(Command{Left: 1, Right: 1})
	if l != 1250 || r != 850 {
		t.Fatalf("expected 1250/850, got %d/%d", l, r)
	}
}

func TestDeadlineGate(t *testing.T) {
	c, _, clock := newTestController(t, DefaultDriveConfig())
	if !c.Elapsed() {
		t.Fatal("fresh controller must start elapsed")
	}

	c.Drive(0.5, 0.5, 0.5)
	clock.Advance(400 * time.Millisecond)
	if c.Elapsed() {
		t.Fatal("expected not elapsed at +400ms")
	}
	clock.Advance(200 * time.Millisecond)
	if !c.Elapsed() {
		t.Fatal("expected elapsed at +600ms")
	}
}

func TestDeadlineIsStrict(t *testing.T) {
	var d Deadline
	d.Arm(epoch, 500*time.Millisecond)
	if d.Elapsed(epoch.Add(500 * time.Millisecond)) {
		t.Fatal("exactly at the deadline is not yet elapsed")
	}
	if !d.Elapsed(epoch.Add(501 * time.Millisecond)) {
		t.Fatal("past the deadline should be elapsed")
	}
}

func TestIssueSupersedesPrevious(t *testing.T) {
	c, board, clock := newTestController(t, DefaultDriveConfig())
	c.Drive(0.9, 0.9, 3)
	clock.Advance(100 * time.Millisecond)
	c.Drive(0, 0, 0.25)

	d := c.Deadline()
	if !d.ArmedAt.Equal(epoch.Add(100*time.Millisecond)) || d.Duration != 250*time.Millisecond {
		t.Fatalf("deadline not re-armed: %+v", d)
	}
	if len(board.Writes()) != 4 {
		t.Fatalf("expected 4 writes, got %d", len(board.Writes()))
	}
}

func TestHaltKeepsDeadline(t *testing.T) {
	c, board, _ := newTestController(t, DefaultDriveConfig())
	c.Halt()
	if c.Deadline().Armed() {
		t.Fatal("Halt must not arm the deadline")
	}
	if board.Servo(1).Target != 1024 || board.Servo(0).Target != 1024 {
		t.Fatalf("expected neutral targets, got %d/%d", board.Servo(1).Target, board.Servo(0).Target)
	}
}

func TestEnableDisable(t *testing.T) {
	c, board, _ := newTestController(t, DefaultDriveConfig())
	c.Enable()
	if !board.Servo(0).Enabled || !board.Servo(1).Enabled {
		t.Fatal("expected both channels enabled")
	}
	c.Disable()
	if board.Servo(0).Enabled || board.Servo(1).Enabled {
		t.Fatal("expected both channels disabled")
	}
}

func TestDriveConvertsSeconds(t *testing.T) {
	cmd := Drive(0.1, -0.1, 0.25)
	if cmd.Duration != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", cmd.Duration)
	}
	if cmd.IsStop() || !Drive(0, 0, 1).IsStop() {
		t.Fatal("IsStop mismatch")
	}
}
