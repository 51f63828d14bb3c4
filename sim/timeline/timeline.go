// Package timeline provides the append-only schedule log produced by a
// simulation run. This package has no dependencies on sim/: it stores pure
// data types, one entry per tick, consumed only by reporting code.
package timeline

// Entry records which job (if any) held the processor for one tick.
type Entry struct {
	Tick   int64
	TaskID int    // 0 means the processor was idle this tick
	Job    string // job label, e.g. "P1@4"; empty when idle
}

// Idle reports whether the processor was idle for this entry's tick.
func (e Entry) Idle() bool {
	return e.TaskID == 0
}

// Timeline is the ordered, append-only sequence of per-tick entries.
type Timeline struct {
	Entries []Entry
}

// New creates an empty Timeline.
func New() *Timeline {
	return &Timeline{Entries: make([]Entry, 0)}
}

// Record appends one tick's entry.
func (tl *Timeline) Record(e Entry) {
	tl.Entries = append(tl.Entries, e)
}

// Len returns the number of recorded ticks.
func (tl *Timeline) Len() int {
	return len(tl.Entries)
}

// Transitions compresses the timeline into the entries where the occupant
// changed: the first tick plus every tick whose task differs from the
// previous one. Reporting layers render these as a schedule table.
func (tl *Timeline) Transitions() []Entry {
	var out []Entry
	for i, e := range tl.Entries {
		if i == 0 || e.TaskID != tl.Entries[i-1].TaskID {
			out = append(out, e)
		}
	}
	return out
}
