// Tracks simulation-wide statistics: completion and miss counts, response
// and completion times, and processor occupancy.

package sim

import "fmt"

// Metrics aggregates statistics about one simulation run for final
// reporting. Response time is StartTime - ReleaseTime; completion time is
// CompletionTime - ReleaseTime.
type Metrics struct {
	Completed   int // jobs that finished before their deadline
	Missed      int // jobs retired with an expired deadline and work left
	Pending     int // jobs still ready when the horizon ended
	Preemptions int

	BusyTicks int64
	IdleTicks int64

	SuccessRate       float64 // Completed / (Completed + Missed) * 100; 0 when both are 0
	AvgResponseTime   float64
	MaxResponseTime   int64
	AvgCompletionTime float64
}

// ComputeMetrics derives the summary statistics from the terminal job sets.
func ComputeMetrics(completed, missed, pending []*Job, busy, idle int64, preemptions int) *Metrics {
	m := &Metrics{
		Completed:   len(completed),
		Missed:      len(missed),
		Pending:     len(pending),
		Preemptions: preemptions,
		BusyTicks:   busy,
		IdleTicks:   idle,
	}

	total := m.Completed + m.Missed
	if total > 0 {
		m.SuccessRate = float64(m.Completed) / float64(total) * 100
	}

	if m.Completed > 0 {
		var responseSum, completionSum int64
		for _, j := range completed {
			response := j.StartTime - j.ReleaseTime
			responseSum += response
			if response > m.MaxResponseTime {
				m.MaxResponseTime = response
			}
			completionSum += j.CompletionTime - j.ReleaseTime
		}
		m.AvgResponseTime = float64(responseSum) / float64(m.Completed)
		m.AvgCompletionTime = float64(completionSum) / float64(m.Completed)
	}

	return m
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Completed jobs       : %d\n", m.Completed)
	fmt.Printf("Missed deadlines     : %d\n", m.Missed)
	if m.Pending > 0 {
		fmt.Printf("Pending at horizon   : %d\n", m.Pending)
	}
	fmt.Printf("Success rate         : %.2f%%\n", m.SuccessRate)
	if m.Completed > 0 {
		fmt.Printf("Avg response time    : %.2f ticks\n", m.AvgResponseTime)
		fmt.Printf("Max response time    : %d ticks\n", m.MaxResponseTime)
		fmt.Printf("Avg completion time  : %.2f ticks\n", m.AvgCompletionTime)
	}
	fmt.Printf("Preemptions          : %d\n", m.Preemptions)
	fmt.Printf("Processor busy/idle  : %d/%d ticks\n", m.BusyTicks, m.IdleTicks)
}
