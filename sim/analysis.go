// Feasibility analysis for periodic task sets: utilization and the
// classical schedulability bounds.

package sim

import "math"

// Utilization summarizes processor demand for the recurring tasks of a set.
type Utilization struct {
	Periodic float64
	Dynamic  float64
	Total    float64

	// RMSchedulable holds when the periodic utilization is within the
	// Liu-Layland bound n(2^(1/n)-1); it is sufficient, not necessary.
	RMSchedulable bool
	// EDFSchedulable holds when total utilization does not exceed 1.
	EDFSchedulable bool
}

// Analyze computes utilization and schedulability indicators for a task set.
// Aperiodic tasks have no period and contribute no utilization.
func Analyze(ts *TaskSet) Utilization {
	var u Utilization
	periodicCount := 0
	for _, t := range ts.Tasks {
		if !t.Recurring() || t.Period <= 0 {
			continue
		}
		share := float64(t.ExecutionTime) / float64(t.Period)
		switch t.Kind {
		case Periodic:
			u.Periodic += share
			periodicCount++
		case Dynamic:
			u.Dynamic += share
		}
	}
	u.Total = u.Periodic + u.Dynamic
	u.RMSchedulable = u.Periodic <= RMBound(periodicCount)
	u.EDFSchedulable = u.Total <= 1.0
	return u
}

// RMBound returns the Liu-Layland rate-monotonic schedulability bound for
// n periodic tasks: n(2^(1/n)-1). The bound for zero tasks is 1.
func RMBound(n int) float64 {
	if n == 0 {
		return 1.0
	}
	return float64(n) * (math.Pow(2, 1/float64(n)) - 1)
}
