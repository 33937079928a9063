// Package replay re-runs recorded snapshots through a fresh arbiter on a
// simulated clock and compares the winners with what was recorded.
package replay

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/action"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sim"
)

// ErrFrameOrder is returned when frame offsets go backwards.
var ErrFrameOrder = errors.New("frame offsets must not decrease")

// #region types

// Result is the replay of one frame.
type Result struct {
	Index    int
	AtMS     float64
	Expected string
	Replayed string
	Outcome  arbiter.Outcome
	Command  motion.Command
	Match    bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Frames   int
	Matches  int
	Diverged int
	Acted    int
	Stopped  int
	Waiting  int
}

// #endregion types

// #region replay

// epoch anchors the simulated clock; only offsets matter.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Resolve returns the configuration a fixture runs with.
func (f *Fixture) Resolve() (config.Config, error) {
	if f.Config != nil {
		return *f.Config, nil
	}
	return config.ForPreset(config.Preset(f.Preset))
}

// Replay runs every frame through a new engine. It fails only on an unusable
// fixture; mismatches are reported per frame.
func Replay(f *Fixture) ([]Result, error) {
	cfg, err := f.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve fixture config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fixture config: %w", err)
	}
	defs, err := cfg.Behaviors()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	actions := action.NewSet(cfg.Tuning)
	board := sim.NewBoard(false)
	clock := sim.NewClock(epoch)
	mc, err := motion.NewController(board, clock, cfg.Drive)
	if err != nil {
		return nil, fmt.Errorf("motion controller: %w", err)
	}
	source := sensor.NewSequence()
	engine := arbiter.NewEngine(behavior.NewRegistry(defs, rng), actions, source, mc, clock)
	engine.Start()

	results := make([]Result, 0, len(f.Frames))
	var last time.Duration
	for i, fr := range f.Frames {
		at := fr.Offset()
		if at < last {
			return nil, fmt.Errorf("frame %d at %.3fms: %w", i, fr.AtMS, ErrFrameOrder)
		}
		last = at

		if fr.Hierarchy != nil {
			hier, err := config.ParseHierarchy(fr.Hierarchy)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			// A recorded edit swaps the whole hierarchy. The motion
			// controller, and with it the running command, carries over.
			engine = arbiter.NewEngine(behavior.NewRegistry(hier, rng), actions, source, mc, clock)
		}
		clock.Set(epoch.Add(at))
		source.Set(fr.Snapshot)

		d := engine.Tick()
		got := d.Label()
		results = append(results, Result{
			Index:    i,
			AtMS:     fr.AtMS,
			Expected: fr.Expect,
			Replayed: got,
			Outcome:  d.Outcome,
			Command:  d.Command,
			Match:    got == fr.Expect,
		})
	}
	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{Frames: len(results)}
	for _, r := range results {
		if r.Match {
			s.Matches++
		} else {
			s.Diverged++
		}
		switch r.Outcome {
		case arbiter.OutcomeActed:
			s.Acted++
		case arbiter.OutcomeStopped:
			s.Stopped++
		case arbiter.OutcomeWaiting:
			s.Waiting++
		}
	}
	return s
}

// #endregion replay
