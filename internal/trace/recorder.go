package trace

import (
	"log"
	"slices"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
)

// #region recorder

// Recorder is an arbiter.Observer that writes issued decisions to a Store.
// Write failures are logged and counted; they never reach the control loop.
type Recorder struct {
	store    *Store
	session  string
	registry *behavior.Registry

	last     []config.Entry
	written  int
	failures int
}

// NewRecorder records into session. registry is read after every issued
// decision so that hierarchy edits are captured.
func NewRecorder(store *Store, session string, registry *behavior.Registry) *Recorder {
	return &Recorder{store: store, session: session, registry: registry}
}

// Observe implements arbiter.Observer.
func (r *Recorder) Observe(d arbiter.Decision) {
	if !d.Outcome.Issued() {
		return
	}
	current := config.Entries(r.registry.Enabled())
	var changed []config.Entry
	if r.last == nil || !slices.Equal(current, r.last) {
		changed = current
	}
	ok, err := r.store.Record(r.session, d, changed)
	if err != nil {
		r.failures++
		log.Printf("trace: tick %d: %v", d.Tick, err)
		return
	}
	if ok {
		r.written++
		r.last = current
	}
}

// Written returns the number of decisions stored.
func (r *Recorder) Written() int {
	return r.written
}

// Failures returns the number of decisions that could not be stored.
func (r *Recorder) Failures() int {
	return r.failures
}

// #endregion recorder
