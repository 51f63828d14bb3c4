// Defines the Task and TaskSet types that describe the workload handed to the
// simulator. A Task is immutable after creation; Jobs reference it read-only.

package sim

import "fmt"

// TaskKind identifies how a task recurs.
type TaskKind string

const (
	// Periodic tasks release a new job at every multiple of their period.
	Periodic TaskKind = "P"
	// Dynamic tasks behave like periodic tasks for scheduling purposes but
	// are described separately in the input format (release fixed at 0).
	Dynamic TaskKind = "D"
	// Aperiodic tasks release exactly one job at their release time and
	// carry no period or deadline.
	Aperiodic TaskKind = "A"
)

// MaxTasks is the fixed task-set capacity. Exceeding it is a fatal input error.
const MaxTasks = 50

// Task describes a unit of recurring or one-shot work.
// All times are in integer ticks.
type Task struct {
	ID            int // stable, unique within a TaskSet, assigned by TaskSet.Add
	Kind          TaskKind
	ExecutionTime int64 // processor time required per activation
	Period        int64 // inter-arrival time; 0 for aperiodic tasks
	Deadline      int64 // relative deadline; defaults to Period, 0 for aperiodic
	FirstRelease  int64 // earliest activation time
}

// Recurring reports whether the task releases a fresh job every period.
func (t *Task) Recurring() bool {
	return t.Kind == Periodic || t.Kind == Dynamic
}

// String renders the task as in the input format, e.g. "P1", "D2", "A3".
func (t *Task) String() string {
	return fmt.Sprintf("%s%d", t.Kind, t.ID)
}

// TaskSet holds tasks in insertion order. Insertion order is load-bearing:
// the simulator's ready queue inherits it, and policy tie-breaks depend on it.
type TaskSet struct {
	Tasks []*Task

	nextID int
}

// NewTaskSet creates an empty task set.
func NewTaskSet() *TaskSet {
	return &TaskSet{Tasks: make([]*Task, 0)}
}

// Add creates a Task from a parsed record and appends it to the set,
// assigning the next sequential ID. A zero deadline defaults to the period.
// Returns an error when the fixed capacity is exceeded.
func (ts *TaskSet) Add(kind TaskKind, release, execution, period, deadline int64) (*Task, error) {
	if len(ts.Tasks) >= MaxTasks {
		return nil, fmt.Errorf("task set capacity exceeded (max %d tasks)", MaxTasks)
	}
	if deadline == 0 {
		deadline = period
	}
	ts.nextID++
	t := &Task{
		ID:            ts.nextID,
		Kind:          kind,
		ExecutionTime: execution,
		Period:        period,
		Deadline:      deadline,
		FirstRelease:  release,
	}
	ts.Tasks = append(ts.Tasks, t)
	return t, nil
}

// Len returns the number of tasks in the set.
func (ts *TaskSet) Len() int {
	return len(ts.Tasks)
}

// ByKind returns the tasks of the given kind, in insertion order.
func (ts *TaskSet) ByKind(kind TaskKind) []*Task {
	var out []*Task
	for _, t := range ts.Tasks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Validate returns a list of problems with the task set. An infeasible set
// (execution time exceeding the deadline) is NOT a problem: it is a valid,
// observable test condition that surfaces as missed deadlines.
func (ts *TaskSet) Validate() []string {
	var problems []string
	for _, t := range ts.Tasks {
		if t.ExecutionTime <= 0 {
			problems = append(problems, fmt.Sprintf("%s: execution time must be positive", t))
		}
		if t.FirstRelease < 0 {
			problems = append(problems, fmt.Sprintf("%s: release time cannot be negative", t))
		}
		if t.Recurring() {
			if t.Period <= 0 {
				problems = append(problems, fmt.Sprintf("%s: period must be positive", t))
			}
			if t.Deadline <= 0 {
				problems = append(problems, fmt.Sprintf("%s: deadline must be positive", t))
			}
		}
	}
	return problems
}
