package sim

import (
	"fmt"
	"strings"
)

// Policy selects which ready job runs each tick. It is a closed set of
// variants; every decision point switches exhaustively over them, so an
// unhandled policy is a programming error, not a silent misordering.
type Policy string

const (
	// PolicyRM is Rate Monotonic: fixed priority by task period.
	PolicyRM Policy = "rm"
	// PolicyDM is Deadline Monotonic: fixed priority by relative deadline.
	PolicyDM Policy = "dm"
	// PolicyEDF is Earliest Deadline First: dynamic priority by absolute deadline.
	PolicyEDF Policy = "edf"
	// PolicyLLF is Least Laxity First (also known as Least Slack Time);
	// laxity is recomputed against the clock every tick.
	PolicyLLF Policy = "llf"
	// PolicyFCFS is First-Come-First-Served by job release time.
	PolicyFCFS Policy = "fcfs"
	// PolicySJF is Shortest Job First by remaining execution time.
	PolicySJF Policy = "sjf"
)

// validPolicies maps accepted policy names, including the legacy aliases
// lst (for llf) and fifo (for fcfs).
var validPolicies = map[string]Policy{
	"rm":   PolicyRM,
	"dm":   PolicyDM,
	"edf":  PolicyEDF,
	"llf":  PolicyLLF,
	"lst":  PolicyLLF,
	"fcfs": PolicyFCFS,
	"fifo": PolicyFCFS,
	"sjf":  PolicySJF,
}

// ParsePolicy resolves a policy name (case-insensitive aliases included).
func ParsePolicy(name string) (Policy, error) {
	if p, ok := validPolicies[strings.ToLower(name)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown scheduling policy %q (valid: rm, dm, edf, llf, fcfs, sjf)", name)
}

// Name returns the policy's display name.
func (p Policy) Name() string {
	switch p {
	case PolicyRM:
		return "Rate Monotonic (RM)"
	case PolicyDM:
		return "Deadline Monotonic (DM)"
	case PolicyEDF:
		return "Earliest Deadline First (EDF)"
	case PolicyLLF:
		return "Least Laxity First (LLF)"
	case PolicyFCFS:
		return "First Come First Served (FCFS)"
	case PolicySJF:
		return "Shortest Job First (SJF)"
	default:
		panic(fmt.Sprintf("unhandled policy %q", string(p)))
	}
}

// SelectJob returns the highest-priority ready job under the policy, or nil
// for an empty ready set (idle tick). Ties keep the earliest ready-set
// entry: the scan only replaces the incumbent on a strictly smaller key,
// so with a deterministic ready order the whole simulation is deterministic.
func SelectJob(p Policy, ready []*Job, now int64) *Job {
	if len(ready) == 0 {
		return nil
	}
	best := ready[0]
	for _, j := range ready[1:] {
		if outranks(p, j, best, now) {
			best = j
		}
	}
	return best
}

// outranks reports whether job a strictly beats job b under policy p.
func outranks(p Policy, a, b *Job, now int64) bool {
	switch p {
	case PolicyRM:
		return periodKey(a) < periodKey(b)
	case PolicyDM:
		return deadlineKey(a) < deadlineKey(b)
	case PolicyEDF:
		return a.AbsoluteDeadline < b.AbsoluteDeadline
	case PolicyLLF:
		return a.Laxity(now) < b.Laxity(now)
	case PolicyFCFS:
		return a.ReleaseTime < b.ReleaseTime
	case PolicySJF:
		return a.Remaining < b.Remaining
	default:
		panic(fmt.Sprintf("unhandled policy %q", string(p)))
	}
}

// periodKey is the RM ordering key. Aperiodic jobs have no period and rank
// below every periodic job.
func periodKey(j *Job) int64 {
	if j.Task.Recurring() {
		return j.Task.Period
	}
	return NoDeadline
}

// deadlineKey is the DM ordering key, with the same aperiodic rule.
func deadlineKey(j *Job) int64 {
	if j.Task.Recurring() {
		return j.Task.Deadline
	}
	return NoDeadline
}
