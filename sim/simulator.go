// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/aliemreo/real-time-scheduling/sim/timeline"
)

// Simulator is the core object that holds simulated time, the ready set,
// and the per-tick scheduling loop. It is the sole mutator of Job and
// server-budget state; Tasks are read-only after creation.
//
// The ready set is a slice in release order. Determinism is load-bearing:
// policy tie-breaks resolve to the earliest entry, so identical inputs
// always produce an identical tick-by-tick log.
type Simulator struct {
	Clock   int64
	Horizon int64
	Tasks   *TaskSet
	Policy  Policy
	// Server is nil for plain policy runs. When set, it wraps Policy's role:
	// selection goes through the server's admission rule and aperiodic
	// execution is metered against its budget.
	Server *Server

	Ready     []*Job
	Completed []*Job
	Missed    []*Job
	// Pending holds jobs still ready when the horizon ended; they are
	// reported separately from completed and missed.
	Pending []*Job

	Timeline *timeline.Timeline
	Metrics  *Metrics

	running     *Job // occupant of the previous tick, for preemption counting
	preemptions int
	busyTicks   int64
	idleTicks   int64
	released    map[int]bool // aperiodic task IDs already released
}

// NewSimulator creates a plain policy-driven simulator. Without a server
// there is no aperiodic admission: only periodic and dynamic tasks release
// jobs.
func NewSimulator(tasks *TaskSet, policy Policy, horizon int64) *Simulator {
	return &Simulator{
		Horizon:  horizon,
		Tasks:    tasks,
		Policy:   policy,
		Ready:    make([]*Job, 0),
		Timeline: timeline.New(),
		released: make(map[int]bool),
	}
}

// NewServerSimulator creates a simulator driven by an aperiodic server
// wrapping its configured base policy.
func NewServerSimulator(tasks *TaskSet, server *Server, horizon int64) *Simulator {
	s := NewSimulator(tasks, server.Base, horizon)
	s.Server = server
	return s
}

// Run executes the simulation loop until the horizon. Each tick advances
// through Release, Prune, Replenish, Select, Execute, and Retire; at most
// one job runs per tick.
func (s *Simulator) Run() {
	for s.Clock < s.Horizon {
		now := s.Clock
		s.release(now)
		s.prune(now)
		if s.Server != nil {
			s.Server.Replenish(now)
		}
		job := s.selectJob(now)
		s.execute(job, now)
		s.Clock++
	}

	// jobs that never reached a terminal state accumulate here
	s.Pending = append(s.Pending, s.Ready...)
	s.Ready = s.Ready[:0]

	s.Metrics = ComputeMetrics(s.Completed, s.Missed, s.Pending, s.busyTicks, s.idleTicks, s.preemptions)
	logrus.Infof("[tick %04d] simulation ended: %d completed, %d missed, %d pending",
		s.Clock, s.Metrics.Completed, s.Metrics.Missed, s.Metrics.Pending)
}

// release spawns jobs for tasks whose schedule fires at this tick.
// Periodic and dynamic tasks fire at every multiple of their period once
// their first release has elapsed; aperiodic tasks fire exactly once, and
// only when a server governs their admission.
func (s *Simulator) release(now int64) {
	for _, t := range s.Tasks.Tasks {
		switch {
		case t.Recurring():
			if now >= t.FirstRelease && now%t.Period == 0 {
				s.spawn(t, now)
			}
		case s.Server != nil:
			if !s.released[t.ID] && now == t.FirstRelease {
				s.released[t.ID] = true
				s.spawn(t, now)
			}
		}
	}
}

func (s *Simulator) spawn(t *Task, now int64) {
	job := NewJob(t, now)
	s.Ready = append(s.Ready, job)
	logrus.Debugf("[tick %04d] released %s (deadline %d)", now, job, job.AbsoluteDeadline)
}

// prune retires overdue jobs as missed. Aperiodic jobs have no deadline
// and are never pruned.
func (s *Simulator) prune(now int64) {
	kept := s.Ready[:0]
	for _, j := range s.Ready {
		if j.IsOverdue(now) {
			s.Missed = append(s.Missed, j)
			if s.running == j {
				s.running = nil
			}
			logrus.Warnf("[tick %04d] %s missed deadline %d with %d ticks remaining",
				now, j, j.AbsoluteDeadline, j.Remaining)
			continue
		}
		kept = append(kept, j)
	}
	s.Ready = kept
}

func (s *Simulator) selectJob(now int64) *Job {
	if s.Server != nil {
		return s.Server.Select(s.Ready, now)
	}
	return SelectJob(s.Policy, s.Ready, now)
}

// execute advances the chosen job by one time unit, or logs an idle tick.
// Aperiodic execution is metered through the server budget.
func (s *Simulator) execute(job *Job, now int64) {
	if job == nil {
		s.Timeline.Record(timeline.Entry{Tick: now})
		s.idleTicks++
		s.running = nil
		return
	}

	if s.running != nil && s.running != job {
		s.running.PreemptionCount++
		s.preemptions++
		logrus.Debugf("[tick %04d] %s preempted by %s", now, s.running, job)
	}

	grant := int64(1)
	if job.Task.Kind == Aperiodic && s.Server != nil {
		grant = s.Server.Consume(1)
	}
	executed := job.Advance(now, grant)

	s.Timeline.Record(timeline.Entry{Tick: now, TaskID: job.Task.ID, Job: job.String()})
	s.busyTicks++
	logrus.Debugf("[tick %04d] running %s (%d executed, %d remaining)", now, job, executed, job.Remaining)

	if job.IsComplete() {
		job.CompletionTime = now + 1
		s.removeReady(job)
		s.Completed = append(s.Completed, job)
		s.running = nil
		logrus.Debugf("[tick %04d] %s completed", now, job)
		return
	}
	s.running = job
}

func (s *Simulator) removeReady(job *Job) {
	for i, j := range s.Ready {
		if j == job {
			s.Ready = append(s.Ready[:i], s.Ready[i+1:]...)
			return
		}
	}
}
