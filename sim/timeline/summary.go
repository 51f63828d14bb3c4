package timeline

// Summary aggregates per-task occupancy statistics from a Timeline.
type Summary struct {
	TotalTicks      int64
	IdleTicks       int64
	TicksPerTask    map[int]int64 // task ID → ticks executed
	ContextSwitches int           // transitions between different occupants
	LongestStretch  int64         // longest run of consecutive ticks for one task
}

// Summarize computes aggregate statistics from a Timeline.
// Safe for nil or empty timelines (returns zero-value fields).
func Summarize(tl *Timeline) *Summary {
	summary := &Summary{
		TicksPerTask: make(map[int]int64),
	}
	if tl == nil {
		return summary
	}

	summary.TotalTicks = int64(len(tl.Entries))
	prevTask := 0
	var stretch int64
	for i, e := range tl.Entries {
		if e.Idle() {
			summary.IdleTicks++
		} else {
			summary.TicksPerTask[e.TaskID]++
		}
		if i == 0 || e.TaskID == prevTask {
			stretch++
		} else {
			if e.TaskID != 0 {
				summary.ContextSwitches++
			}
			stretch = 1
		}
		if e.TaskID != 0 && stretch > summary.LongestStretch {
			summary.LongestStretch = stretch
		}
		prevTask = e.TaskID
	}
	return summary
}
