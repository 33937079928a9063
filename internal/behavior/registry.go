package behavior

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// #region behavior

// Behavior is one entry of the subsumption hierarchy. ID is the entry's
// position in the startup declaration and never changes; Rank decides the
// evaluation order, lowest first.
type Behavior struct {
	ID      int
	Label   string
	Kind    Kind
	Rank    int
	Enabled bool
}

// #endregion behavior

// #region registry

// Registry is the fixed-length ranked list of behaviors. Entries are kept in
// evaluation order: enabled entries by ascending rank, then disabled entries.
type Registry struct {
	entries []Behavior
	rng     *rand.Rand
}

// NewRegistry copies defs, numbers them by position and ranks them. Entries
// declared with equal ranks keep their declaration order. rng may be nil.
func NewRegistry(defs []Behavior, rng *rand.Rand) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	entries := make([]Behavior, len(defs))
	for i, d := range defs {
		d.ID = i
		if d.Label == "" {
			d.Label = d.Kind.Label()
		}
		entries[i] = d
	}
	r := &Registry{entries: entries, rng: rng}
	r.ReRank()
	return r
}

// Len returns the fixed number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at evaluation position i.
func (r *Registry) At(i int) (Behavior, bool) {
	if i < 0 || i >= len(r.entries) {
		return Behavior{}, false
	}
	return r.entries[i], true
}

// All returns a copy of every entry in evaluation order.
func (r *Registry) All() []Behavior {
	return slices.Clone(r.entries)
}

// Enabled returns the enabled entries in ascending rank order.
func (r *Registry) Enabled() []Behavior {
	out := make([]Behavior, 0, len(r.entries))
	for _, b := range r.entries {
		if b.Enabled {
			out = append(out, b)
		}
	}
	return out
}

// EnabledCount returns how many entries are enabled.
func (r *Registry) EnabledCount() int {
	n := 0
	for _, b := range r.entries {
		if b.Enabled {
			n++
		}
	}
	return n
}

// IndexOf returns the evaluation position of the entry with the given ID, or -1.
func (r *Registry) IndexOf(id int) int {
	return slices.IndexFunc(r.entries, func(b Behavior) bool { return b.ID == id })
}

// DisabledRank is the rank shared by every disabled entry.
func (r *Registry) DisabledRank() int {
	return len(r.entries) + 1
}

// #endregion registry

// #region cursor

// CycleNext moves an index by step, wrapping in either direction.
func (r *Registry) CycleNext(current, step int) int {
	n := len(r.entries)
	if n == 0 {
		return 0
	}
	return ((current+step)%n + n) % n
}

// #endregion cursor

// #region mutators

// ToggleEnabled flips the entry at i and returns its new position.
// Out-of-range indices are ignored.
func (r *Registry) ToggleEnabled(i int) int {
	if i < 0 || i >= len(r.entries) {
		return i
	}
	id := r.entries[i].ID
	r.entries[i].Enabled = !r.entries[i].Enabled
	r.ReRank()
	return r.IndexOf(id)
}

// AdjustRank shifts an enabled entry's rank by delta and returns its new
// position. Disabled entries are left alone. Ranks are contiguous, so a delta
// of -2 moves an entry above its upper neighbour.
func (r *Registry) AdjustRank(i, delta int) int {
	if i < 0 || i >= len(r.entries) || !r.entries[i].Enabled {
		return i
	}
	id := r.entries[i].ID
	r.entries[i].Rank += delta
	r.ReRank()
	return r.IndexOf(id)
}

// ResetAll disables every entry.
func (r *Registry) ResetAll() {
	for i := range r.entries {
		r.entries[i].Enabled = false
	}
	r.ReRank()
}

// RandomizeAndDisableAll shuffles the entries through random ranks and
// disables them, hiding the declared order.
func (r *Registry) RandomizeAndDisableAll() {
	for i := range r.entries {
		r.entries[i].Enabled = false
		r.entries[i].Rank = r.rng.Int()
	}
	r.ReRank()
}

// ReRank stable-sorts by (enabled first, rank ascending), then numbers the
// enabled entries 0..k-1 and gives every disabled entry DisabledRank.
func (r *Registry) ReRank() {
	slices.SortStableFunc(r.entries, compareRanks)
	low := r.DisabledRank()
	next := 0
	for i := range r.entries {
		if r.entries[i].Enabled {
			r.entries[i].Rank = next
			next++
		} else {
			r.entries[i].Rank = low
		}
	}
}

func compareRanks(a, b Behavior) int {
	if a.Enabled != b.Enabled {
		if a.Enabled {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Rank, b.Rank)
}

// #endregion mutators
