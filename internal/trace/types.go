package trace

import (
	"time"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

// #region session
// Session is one controller run.
type Session struct {
	ID         string
	StartedAt  time.Time
	Preset     string
	ConfigJSON string
	Decisions  int
}
// #endregion session

// #region entry
// Entry is one recorded decision. Hierarchy is set only on rows where the
// active hierarchy changed since the previous row of the session.
type Entry struct {
	Tick      uint64
	At        time.Time
	Outcome   string // "acted" | "stopped"
	Behavior  string
	Kind      string
	Left      float64
	Right     float64
	Duration  time.Duration
	Snapshot  sensor.Snapshot
	Hierarchy []config.Entry
}

// Label is the winner's label, or "STOP".
func (e Entry) Label() string {
	if e.Behavior == "" {
		return "STOP"
	}
	return e.Behavior
}
// #endregion entry
