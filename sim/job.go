// Defines the Job struct that models one activation of a Task.
// Tracks remaining work, the absolute deadline, and start/completion
// timestamps for statistics.

package sim

import (
	"fmt"
	"math"
)

// NoDeadline is the absolute deadline assigned to aperiodic jobs, which are
// never classified as missed.
const NoDeadline int64 = math.MaxInt64

// Job is one runtime activation of a Task. Jobs are created on release and
// retired when completed or overdue; both terminal states are absorbing.
type Job struct {
	Task *Task // shared, read-only; many jobs reference one task over a run

	Remaining        int64 // execution time still owed; never below 0
	AbsoluteDeadline int64 // ReleaseTime + Task.Deadline; NoDeadline for aperiodic
	ReleaseTime      int64 // tick at which this instance became ready

	Started         bool
	StartTime       int64 // first executing tick; valid only when Started
	CompletionTime  int64 // tick boundary after the final unit executed
	PreemptionCount int
}

// NewJob releases a job instance of task at the given tick.
func NewJob(task *Task, at int64) *Job {
	deadline := NoDeadline
	if task.Kind != Aperiodic {
		deadline = at + task.Deadline
	}
	return &Job{
		Task:             task,
		Remaining:        task.ExecutionTime,
		AbsoluteDeadline: deadline,
		ReleaseTime:      at,
	}
}

// Advance executes the job for up to duration ticks starting at now,
// clamping to the remaining work. Returns the time actually executed.
// The first call marks the job started and records its start time.
func (j *Job) Advance(now, duration int64) int64 {
	if !j.Started {
		j.Started = true
		j.StartTime = now
	}
	executed := duration
	if executed > j.Remaining {
		executed = j.Remaining
	}
	j.Remaining -= executed
	return executed
}

// IsComplete reports whether the job has no work left.
func (j *Job) IsComplete() bool {
	return j.Remaining <= 0
}

// IsOverdue reports whether the job's deadline has passed while work remains.
// Always false for aperiodic jobs.
func (j *Job) IsOverdue(now int64) bool {
	return j.AbsoluteDeadline <= now && !j.IsComplete()
}

// Laxity returns the time the job could stay idle and still meet its
// deadline: AbsoluteDeadline - now - Remaining.
func (j *Job) Laxity(now int64) int64 {
	return j.AbsoluteDeadline - now - j.Remaining
}

// String renders the job as its task plus release tick, e.g. "P1@4".
func (j *Job) String() string {
	return fmt.Sprintf("%s@%d", j.Task, j.ReleaseTime)
}
