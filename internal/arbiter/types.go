package arbiter

import (
	"time"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

// #region mode

// Mode says who owns the registry: the engine or the editor.
type Mode int

const (
	ModeOperating Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "operating"
}

// #endregion mode

// #region outcome

// Outcome classifies a tick.
type Outcome string

const (
	OutcomeActed     Outcome = "acted"     // a behavior issued a command
	OutcomeStopped   Outcome = "stopped"   // nothing triggered; stop issued
	OutcomeWaiting   Outcome = "waiting"   // previous command still running
	OutcomeSuspended Outcome = "suspended" // editor owns the registry
)

// Issued reports whether the tick wrote a motion command.
func (o Outcome) Issued() bool {
	return o == OutcomeActed || o == OutcomeStopped
}

// #endregion outcome

// #region decision

// Decision is the record of one tick.
type Decision struct {
	Tick     uint64
	At       time.Time
	Mode     Mode
	Outcome  Outcome
	Behavior *behavior.Behavior // winner, nil unless Outcome is OutcomeActed
	Command  motion.Command     // zero unless Outcome.Issued()
	Snapshot sensor.Snapshot    // zero when suspended
}

// Label names the winner, "STOP" for a stop, or "" otherwise.
func (d Decision) Label() string {
	switch d.Outcome {
	case OutcomeActed:
		return d.Behavior.Label
	case OutcomeStopped:
		return "STOP"
	}
	return ""
}

// #endregion decision

// #region observer

// Observer receives every decision the engine makes.
type Observer interface {
	Observe(d Decision)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Decision)

// Observe calls f(d).
func (f ObserverFunc) Observe(d Decision) { f(d) }

// #endregion observer
