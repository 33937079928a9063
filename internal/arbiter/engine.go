package arbiter

import (
	"github.com/danielpatrickdp/subsumption/go-controller/internal/action"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

// #region engine

// Engine is the subsumption arbiter: each tick the first enabled, triggered
// behavior in rank order drives the motors, and nothing else does.
type Engine struct {
	registry  *behavior.Registry
	actions   *action.Set
	source    sensor.Source
	motion    *motion.Controller
	clock     motion.Clock
	mode      Mode
	tick      uint64
	observers []Observer
}

// NewEngine wires the arbiter to its collaborators. The engine starts in
// ModeOperating with an elapsed deadline.
func NewEngine(
	registry *behavior.Registry,
	actions *action.Set,
	source sensor.Source,
	mc *motion.Controller,
	clock motion.Clock,
) *Engine {
	return &Engine{
		registry: registry,
		actions:  actions,
		source:   source,
		motion:   mc,
		clock:    clock,
		mode:     ModeOperating,
	}
}

// AddObserver registers o for every subsequent decision.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// Start powers the wheels and parks them at zero velocity. The deadline is
// left unarmed so the first tick arbitrates immediately.
func (e *Engine) Start() {
	e.motion.Enable()
	e.motion.Halt()
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Registry returns the registry the engine reads.
func (e *Engine) Registry() *behavior.Registry {
	return e.registry
}

// SetMode hands the registry to the editor or back. Entering ModeEditing cuts
// wheel power; leaving it restores power and holds still for the resume window.
func (e *Engine) SetMode(m Mode) {
	if m == e.mode {
		return
	}
	e.mode = m
	switch m {
	case ModeEditing:
		e.motion.Disable()
	case ModeOperating:
		e.motion.Enable()
		e.motion.Issue(e.actions.ResumeHold())
	}
}

// #endregion engine

// #region tick

// Tick runs one control cycle. It never blocks: if the previous command's
// window is still open it only refreshes the snapshot.
func (e *Engine) Tick() Decision {
	e.tick++
	d := Decision{Tick: e.tick, At: e.clock.Now(), Mode: e.mode}

	if e.mode == ModeEditing {
		d.Outcome = OutcomeSuspended
		e.notify(d)
		return d
	}

	d.Snapshot = e.source.Acquire()

	if !e.motion.Elapsed() {
		d.Outcome = OutcomeWaiting
		e.notify(d)
		return d
	}

	if winner, a, ok := e.arbitrate(d.Snapshot); ok {
		d.Outcome = OutcomeActed
		d.Behavior = &winner
		d.Command = a.Respond(d.Snapshot)
	} else {
		d.Outcome = OutcomeStopped
		d.Command = e.actions.Stop()
	}
	e.motion.Issue(d.Command)
	d.Command = e.motion.Last()

	e.notify(d)
	return d
}

// arbitrate returns the highest-priority enabled behavior whose trigger holds.
func (e *Engine) arbitrate(s sensor.Snapshot) (behavior.Behavior, action.Action, bool) {
	for _, b := range e.registry.Enabled() {
		a, err := e.actions.For(b.Kind)
		if err != nil {
			continue
		}
		if a.Triggered(s) {
			return b, a, true
		}
	}
	return behavior.Behavior{}, nil, false
}

func (e *Engine) notify(d Decision) {
	for _, o := range e.observers {
		o.Observe(d)
	}
}

// #endregion tick
