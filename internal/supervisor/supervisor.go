// Package supervisor drives the control loop: it owns the mode toggle and
// decides, once per iteration, whether the editor or the arbiter runs.
package supervisor

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/editor"
)

// #region types

// ModeSwitch reports a press of the mode toggle. Toggled consumes the press.
type ModeSwitch interface {
	Toggled() bool
}

// Pump is called at the start of every iteration to collect input.
type Pump interface {
	Pump()
}

// Supervisor runs one engine and an optional editor.
type Supervisor struct {
	engine *arbiter.Engine
	editor *editor.Editor // nil for a fixed hierarchy
	toggle ModeSwitch
	pumps  []Pump
}

// New creates a Supervisor. With a nil editor or toggle the robot stays in
// operating mode.
func New(engine *arbiter.Engine, ed *editor.Editor, toggle ModeSwitch) *Supervisor {
	return &Supervisor{engine: engine, editor: ed, toggle: toggle}
}

// AddPump registers an input source drained before each iteration.
func (s *Supervisor) AddPump(p Pump) {
	s.pumps = append(s.pumps, p)
}

// #endregion types

// #region step

// Step runs one loop iteration and returns the engine's decision, which is
// OutcomeSuspended while editing.
func (s *Supervisor) Step() arbiter.Decision {
	for _, p := range s.pumps {
		p.Pump()
	}
	if s.editor != nil && s.toggle != nil && s.toggle.Toggled() {
		s.switchMode()
	}
	d := s.engine.Tick()
	if s.engine.Mode() == arbiter.ModeEditing {
		s.editor.Poll()
	}
	return d
}

func (s *Supervisor) switchMode() {
	if s.engine.Mode() == arbiter.ModeOperating {
		s.engine.SetMode(arbiter.ModeEditing)
		s.editor.Enter()
		return
	}
	s.engine.SetMode(arbiter.ModeOperating)
	s.editor.RenderOperating()
}

// #endregion step

// #region run

// Run steps until ctx is done. The limiter only paces the outer loop; a
// nil limiter spins as fast as the host allows.
func (s *Supervisor) Run(ctx context.Context, limiter *rate.Limiter) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				if stopping(ctx) {
					return nil
				}
				return fmt.Errorf("pace loop: %w", err)
			}
		}
		s.Step()
	}
}

// stopping reports whether a limiter error only means ctx is ending. Wait
// fails early when the next slot lies past ctx's deadline.
func stopping(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	if _, ok := ctx.Deadline(); ok {
		<-ctx.Done()
		return true
	}
	return false
}

// NewLimiter returns a limiter for hz iterations per second, or nil when hz <= 0.
func NewLimiter(hz float64) *rate.Limiter {
	if hz <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(hz), 1)
}

// #endregion run
