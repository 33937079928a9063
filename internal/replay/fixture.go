package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/trace"
)

// #region fixture-types

// Fixture is a recorded or hand-written run: the robot configuration and
// the snapshots seen at each tick, with the expected winner per tick.
type Fixture struct {
	Description string         `json:"description"`
	Preset      string         `json:"preset,omitempty"`
	Config      *config.Config `json:"config,omitempty"` // overrides Preset when set
	Frames      []Frame        `json:"frames"`
}

// Frame is one tick. Expect is the winning label, "STOP", or "" for a tick
// that only waits. Hierarchy, when set, replaces the hierarchy before the
// tick runs.
type Frame struct {
	AtMS      float64         `json:"at_ms"`
	Snapshot  sensor.Snapshot `json:"snapshot"`
	Hierarchy []config.Entry  `json:"hierarchy,omitempty"`
	Expect    string          `json:"expect"`
}

// Offset converts AtMS to a duration, rounded to the nanosecond.
func (f Frame) Offset() time.Duration {
	return time.Duration(math.Round(f.AtMS * float64(time.Millisecond)))
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// FromTrace builds a fixture from recorded decisions. Offsets are measured
// from the first entry. cfg may be nil, in which case preset is used.
func FromTrace(description, preset string, cfg *config.Config, entries []trace.Entry) *Fixture {
	f := &Fixture{Description: description, Preset: preset, Config: cfg}
	if len(entries) == 0 {
		return f
	}
	base := entries[0].At
	f.Frames = make([]Frame, len(entries))
	for i, e := range entries {
		f.Frames[i] = Frame{
			AtMS:      float64(e.At.Sub(base)) / float64(time.Millisecond),
			Snapshot:  e.Snapshot,
			Hierarchy: e.Hierarchy,
			Expect:    e.Label(),
		}
	}
	return f
}

// FromSession exports the last n decisions of a recorded session (all when
// n <= 0). The session's stored config is used when it parses; otherwise the
// fixture falls back to the session's preset.
func FromSession(store *trace.Store, sessionID string, n int) (*Fixture, error) {
	sess, err := store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	entries, err := store.ListDecisions(sessionID, n)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrEmptySession)
	}
	var cfg *config.Config
	var parsed config.Config
	if err := json.Unmarshal([]byte(sess.ConfigJSON), &parsed); err == nil && parsed.Preset != "" {
		cfg = &parsed
	}
	if n > 0 && entries[0].Hierarchy == nil {
		// Trimmed exports start mid-session; pin the hierarchy in force then.
		entries[0].Hierarchy, err = hierarchyBefore(store, sessionID, entries[0].Tick)
		if err != nil {
			return nil, err
		}
	}
	desc := fmt.Sprintf("session %s (%s), %d decisions", sess.ID, sess.StartedAt.Format(time.RFC3339), len(entries))
	return FromTrace(desc, sess.Preset, cfg, entries), nil
}

// ErrEmptySession is returned when a session has no recorded decisions.
var ErrEmptySession = errors.New("no decisions recorded")

func hierarchyBefore(store *trace.Store, sessionID string, tick uint64) ([]config.Entry, error) {
	all, err := store.ListDecisions(sessionID, 0)
	if err != nil {
		return nil, err
	}
	var h []config.Entry
	for _, e := range all {
		if e.Tick >= tick {
			break
		}
		if e.Hierarchy != nil {
			h = e.Hierarchy
		}
	}
	return h, nil
}

// #endregion fixture-io
