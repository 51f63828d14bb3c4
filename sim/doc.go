// Package sim provides the core engine for simulating preemptive real-time
// scheduling on a single processor.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - task.go, job.go: the immutable Task description and the Job lifecycle
//     (Ready → Running → Completed | DeadlineMissed)
//   - scheduler.go: the six priority-ordering policies as a pure selection
//     function over the ready set
//   - simulator.go: the tick loop (Release → Prune → Replenish → Select →
//     Execute → Retire)
//
// # Architecture
//
// The loop is single-threaded and advances time in fixed unit ticks; the
// processor is an exclusively-owned-per-tick slot, so at most one job runs
// per tick. server.go adds the aperiodic-server disciplines (Background,
// Polling, Deferrable) that gate aperiodic admission behind a budget state
// machine. Supporting concerns live in sub-packages:
//   - sim/taskfile/: the text task-description parser and YAML scenarios
//   - sim/timeline/: the append-only per-tick schedule log
//
// analysis.go and generator.go round out the toolkit with utilization
// bounds and synthetic task-set generation.
package sim
