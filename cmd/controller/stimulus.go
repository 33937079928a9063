package main

import (
	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sim"
)

// #region stimulus
// stimulus turns keys into sensor changes on the simulated board.
type stimulus struct {
	board *sim.Board
	pins  sensor.PinMap

	near    int // range reading that trips avoid
	ambient int
	bright  int
	dim     int
}

func newStimulus(board *sim.Board, cfg config.Config) *stimulus {
	s := &stimulus{
		board:   board,
		pins:    cfg.Pins,
		near:    cfg.Tuning.Thresholds.Avoid + 200,
		ambient: 500,
		bright:  500 - 2*cfg.Tuning.Thresholds.Photo,
		dim:     500 + 2*cfg.Tuning.Thresholds.Photo,
	}
	if !cfg.Tuning.BrightnessInverted {
		s.bright, s.dim = s.dim, s.bright
	}
	s.clear()
	return s
}

// Poke applies the key and reports whether it was bound.
func (s *stimulus) Poke(r rune) bool {
	p := s.pins
	switch r {
	case '1':
		s.toggle(p.Front.Left)
	case '2':
		s.toggle(p.Front.Center)
	case '3':
		s.toggle(p.Front.Right)
	case '4':
		s.toggle(p.Back.Left)
	case '5':
		s.toggle(p.Back.Center)
	case '6':
		s.toggle(p.Back.Right)
	case 'q':
		s.ranges(s.near, 0)
	case 'w':
		s.ranges(0, s.near)
	case 'e':
		s.light(s.bright, s.dim)
	case 'r':
		s.light(s.dim, s.bright)
	case 'c':
		s.clear()
	default:
		return false
	}
	return true
}

func (s *stimulus) toggle(pin int) {
	if pin != sensor.NoPin {
		s.board.ToggleDigital(pin)
	}
}

func (s *stimulus) ranges(left, right int) {
	s.board.SetAnalog(s.pins.LeftRange, left)
	s.board.SetAnalog(s.pins.RightRange, right)
}

func (s *stimulus) light(left, right int) {
	s.board.SetAnalog(s.pins.LeftPhoto, left)
	s.board.SetAnalog(s.pins.RightPhoto, right)
}

func (s *stimulus) clear() {
	s.board.ResetDigital()
	s.ranges(0, 0)
	s.light(s.ambient, s.ambient)
}
// #endregion stimulus
