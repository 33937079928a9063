// Package action implements the response of each behavior kind.
package action

import (
	"fmt"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/trigger"
)

// #region interface

// Action is the trigger and response of one behavior kind.
type Action interface {
	Kind() behavior.Kind
	Triggered(s sensor.Snapshot) bool
	Respond(s sensor.Snapshot) motion.Command
}

// #endregion interface

// #region set

// Set maps every kind to its Action.
type Set struct {
	tuning  Tuning
	actions map[behavior.Kind]Action
}

// NewSet builds one Action per kind from t.
func NewSet(t Tuning) *Set {
	s := &Set{tuning: t, actions: make(map[behavior.Kind]Action)}
	for _, a := range []Action{
		escapeFront{t},
		escapeBack{t},
		avoid{t},
		approach{t},
		seek{t, behavior.SeekLight},
		seek{t, behavior.SeekDark},
		cruise{behavior.CruiseStraight, motion.Drive(t.CruiseSpeed, t.CruiseSpeed, t.CruiseSeconds)},
		cruise{behavior.CruiseArc, motion.Drive(t.ArcLeft, t.ArcRight, t.CruiseSeconds)},
	} {
		s.actions[a.Kind()] = a
	}
	return s
}

// For returns the Action for k.
func (s *Set) For(k behavior.Kind) (Action, error) {
	a, ok := s.actions[k]
	if !ok {
		return nil, fmt.Errorf("no action for kind %v", k)
	}
	return a, nil
}

// Stop is the command issued when nothing triggers.
func (s *Set) Stop() motion.Command {
	return motion.Drive(0, 0, s.tuning.StopSeconds)
}

// ResumeHold is the command issued when operation resumes after editing.
func (s *Set) ResumeHold() motion.Command {
	return motion.Drive(0, 0, s.tuning.ResumeHoldSecs)
}

// Tuning returns the tuning the set was built with.
func (s *Set) Tuning() Tuning {
	return s.tuning
}

// #endregion set

// #region escape

type escapeFront struct{ t Tuning }

func (escapeFront) Kind() behavior.Kind { return behavior.EscapeFront }

func (escapeFront) Triggered(s sensor.Snapshot) bool { return trigger.AnyFrontContact(s) }

// Respond backs away in an arc that swings the struck side clear.
func (a escapeFront) Respond(s sensor.Snapshot) motion.Command {
	t := a.t
	if !t.SideAwareEscape {
		return motion.Drive(-t.BackoffBias, -t.EscapeSpeed, t.BackoffSeconds)
	}
	switch {
	case s.Front.Left:
		return motion.Drive(-t.EscapeBias, -t.EscapeSpeed, t.EscapeSeconds)
	case s.Front.Right:
		return motion.Drive(-t.EscapeSpeed, 0, t.EscapeSeconds)
	default:
		return motion.Drive(-2*t.EscapeBias, -t.EscapeSpeed, t.EscapeSeconds)
	}
}

type escapeBack struct{ t Tuning }

func (escapeBack) Kind() behavior.Kind { return behavior.EscapeBack }

func (escapeBack) Triggered(s sensor.Snapshot) bool { return trigger.AnyBackContact(s) }

// Respond drives forward, turning away from the struck side.
func (a escapeBack) Respond(s sensor.Snapshot) motion.Command {
	t := a.t
	if !t.SideAwareEscape {
		return motion.Drive(t.EscapeSpeed, t.EscapeSpeed, t.EscapeSeconds)
	}
	switch {
	case s.Back.Left:
		return motion.Drive(t.EscapeSpeed, t.EscapeBias, t.EscapeSeconds)
	case s.Back.Right:
		return motion.Drive(t.EscapeBias, t.EscapeSpeed, t.EscapeSeconds)
	default:
		return motion.Drive(t.EscapeSpeed, t.EscapeSpeed, t.EscapeSeconds)
	}
}

// #endregion escape

// #region range

type avoid struct{ t Tuning }

func (avoid) Kind() behavior.Kind { return behavior.Avoid }

func (a avoid) Triggered(s sensor.Snapshot) bool { return a.t.Thresholds.AvoidTriggered(s) }

// Respond spins in place away from the near side.
func (a avoid) Respond(s sensor.Snapshot) motion.Command {
	t := a.t
	if s.LeftRange > t.Thresholds.Avoid {
		return motion.Drive(t.AvoidSpeed, -t.AvoidSpeed, t.AvoidSeconds)
	}
	return motion.Drive(-t.AvoidSpeed, t.AvoidSpeed, t.AvoidSeconds)
}

type approach struct{ t Tuning }

func (approach) Kind() behavior.Kind { return behavior.Approach }

func (a approach) Triggered(s sensor.Snapshot) bool { return a.t.Thresholds.ApproachTriggered(s) }

// Respond arcs toward the near side.
func (a approach) Respond(s sensor.Snapshot) motion.Command {
	t := a.t
	if s.LeftRange > t.Thresholds.Approach {
		return motion.Drive(t.ApproachSlow, t.ApproachFast, t.ApproachSecs)
	}
	return motion.Drive(t.ApproachFast, t.ApproachSlow, t.ApproachSecs)
}

// #endregion range

// #region seek

type seek struct {
	t    Tuning
	kind behavior.Kind
}

func (a seek) Kind() behavior.Kind { return a.kind }

func (a seek) Triggered(s sensor.Snapshot) bool { return a.t.Thresholds.PhotoTriggered(s) }

// Respond rotates in place toward the brighter side for SeekLight and the
// dimmer side for SeekDark. Equal readings rotate nowhere.
func (a seek) Respond(s sensor.Snapshot) motion.Command {
	dir := sign(s.RightPhoto - s.LeftPhoto) // +1: left reads lower
	if !a.t.BrightnessInverted {
		dir = -dir
	}
	// dir is now +1 when the left side is brighter.
	if a.kind == behavior.SeekDark {
		dir = -dir
	}
	right := a.t.SeekSpeed * float64(dir)
	return motion.Drive(-right, right, a.t.SeekSeconds)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// #endregion seek

// #region cruise

// cruise has no trigger; it is the catch-all at the bottom of a hierarchy.
type cruise struct {
	kind behavior.Kind
	cmd  motion.Command
}

func (a cruise) Kind() behavior.Kind { return a.kind }

func (cruise) Triggered(sensor.Snapshot) bool { return true }

func (a cruise) Respond(sensor.Snapshot) motion.Command { return a.cmd }

// #endregion cruise
