package cmd

import (
	"fmt"
	"sort"

	"github.com/aliemreo/real-time-scheduling/sim"
	"github.com/aliemreo/real-time-scheduling/sim/timeline"
)

// report prints the schedule table and summary statistics for one run.
// The schedule is compressed to occupancy transitions: one row per change
// of running job, plus idle gaps.
func report(name string, s *sim.Simulator, tasks *sim.TaskSet) {
	fmt.Printf("\n=== %s Scheduling ===\n", name)
	fmt.Println("Time\tTask\tAction")
	fmt.Println("----\t----\t------")
	for _, e := range s.Timeline.Transitions() {
		if e.Idle() {
			fmt.Printf("%d\tIDLE\t-\n", e.Tick)
		} else {
			fmt.Printf("%d\t%s\tExecuting\n", e.Tick, e.Job)
		}
	}

	fmt.Println()
	s.Metrics.Print()

	if len(s.Missed) > 0 {
		fmt.Print("Deadline misses: ")
		for _, j := range s.Missed {
			fmt.Printf("%s at t=%d ", j, j.AbsoluteDeadline)
		}
		fmt.Println()
	}

	if runDetailed {
		printAnalysis(tasks)
		printTimelineSummary(s.Timeline)
	}
}

func printAnalysis(tasks *sim.TaskSet) {
	u := sim.Analyze(tasks)
	fmt.Println("\nUtilization Analysis:")
	fmt.Printf("  Total utilization : %.4f\n", u.Total)
	fmt.Printf("  RM schedulable    : %s\n", yesNo(u.RMSchedulable))
	fmt.Printf("  EDF schedulable   : %s\n", yesNo(u.EDFSchedulable))
}

func printTimelineSummary(tl *timeline.Timeline) {
	summary := timeline.Summarize(tl)
	fmt.Println("\nTimeline Summary:")
	fmt.Printf("  Ticks (busy/idle) : %d/%d\n", summary.TotalTicks-summary.IdleTicks, summary.IdleTicks)
	fmt.Printf("  Context switches  : %d\n", summary.ContextSwitches)
	fmt.Printf("  Longest stretch   : %d ticks\n", summary.LongestStretch)
	ids := make([]int, 0, len(summary.TicksPerTask))
	for id := range summary.TicksPerTask {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Printf("  Task %d            : %d ticks\n", id, summary.TicksPerTask[id])
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
