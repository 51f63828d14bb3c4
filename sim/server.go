// Implements the three aperiodic-server disciplines: Background, Polling,
// and Deferrable. A server wraps a base priority policy (RM or EDF) for the
// periodic subset and adds a budget state machine governing when aperiodic
// jobs may consume processor time.

package sim

import (
	"fmt"
	"strings"
)

// ServerKind identifies the aperiodic-server discipline.
type ServerKind string

const (
	// ServerBackground runs aperiodic jobs only when no periodic job is
	// ready; no budget accounting.
	ServerBackground ServerKind = "background"
	// ServerPolling refills its budget at each period boundary and cannot
	// bank it: any consumption, or a boundary with no aperiodic demand,
	// discards the remainder.
	ServerPolling ServerKind = "polling"
	// ServerDeferrable meters budget per unit actually served; leftover
	// budget survives until the next replenishment.
	ServerDeferrable ServerKind = "deferrable"
)

// serverKindNames maps input-format spellings to server kinds. "DEFERABLE"
// is the file format's historical (misspelled) keyword and stays accepted.
var serverKindNames = map[string]ServerKind{
	"background": ServerBackground,
	"polling":    ServerPolling,
	"poller":     ServerPolling,
	"deferrable": ServerDeferrable,
	"deferable":  ServerDeferrable,
}

// ParseServerKind resolves a server-kind name, case-insensitively.
func ParseServerKind(name string) (ServerKind, error) {
	if k, ok := serverKindNames[strings.ToLower(name)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown server type %q (valid: POLLER, DEFERABLE, BACKGROUND)", name)
}

// ServerConfig is the parsed server record from an input file.
type ServerConfig struct {
	Kind       ServerKind
	Budget     int64
	Period     int64
	BasePolicy Policy // PolicyRM or PolicyEDF
}

// Validate checks the configuration for the chosen discipline.
func (c *ServerConfig) Validate() error {
	switch c.Kind {
	case ServerBackground:
		// no budget accounting; Budget/Period are accepted and ignored
	case ServerPolling, ServerDeferrable:
		if c.Budget <= 0 {
			return fmt.Errorf("%s server requires a positive budget", c.Kind)
		}
		if c.Period <= 0 {
			return fmt.Errorf("%s server requires a positive replenishment period", c.Kind)
		}
	default:
		return fmt.Errorf("unknown server kind %q", string(c.Kind))
	}
	if c.BasePolicy != PolicyRM && c.BasePolicy != PolicyEDF {
		return fmt.Errorf("server base policy must be rm or edf, got %q", string(c.BasePolicy))
	}
	return nil
}

// Server is the budget state machine for one simulation run.
type Server struct {
	Kind      ServerKind
	Capacity  int64
	Remaining int64 // 0 <= Remaining <= Capacity
	Period    int64
	Base      Policy
}

// NewServer builds a Server from a validated configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		Kind:     cfg.Kind,
		Capacity: cfg.Budget,
		Period:   cfg.Period,
		Base:     cfg.BasePolicy,
	}, nil
}

// Replenish refills the budget to full capacity at each replenishment
// period boundary (exact modulo, so it fires once per boundary and is
// idempotent within the tick).
func (s *Server) Replenish(now int64) {
	if s.Kind == ServerBackground {
		return
	}
	if now%s.Period == 0 {
		s.Remaining = s.Capacity
	}
}

// Select picks the job to run this tick from the ready set, applying the
// discipline's admission rule for aperiodic jobs. May mutate the budget:
// the Polling discipline discards it on the paths where it cannot be used.
func (s *Server) Select(ready []*Job, now int64) *Job {
	periodic, aperiodic := splitReady(ready)

	switch s.Kind {
	case ServerBackground:
		if job := SelectJob(s.Base, periodic, now); job != nil {
			return job
		}
		// aperiodic jobs run FCFS in the gaps, with no reservation
		if len(aperiodic) > 0 {
			return aperiodic[0]
		}
		return nil

	case ServerPolling:
		if s.Remaining > 0 {
			if len(aperiodic) == 0 {
				// no demand at the instant the budget could be used: sunk
				s.Remaining = 0
				return SelectJob(s.Base, periodic, now)
			}
			if hp := SelectJob(s.Base, periodic, now); hp != nil && s.periodicPreempts(hp, now) {
				s.Remaining = 0
				return hp
			}
			return aperiodic[0]
		}
		return SelectJob(s.Base, periodic, now)

	case ServerDeferrable:
		if s.Remaining > 0 && len(aperiodic) > 0 {
			if hp := SelectJob(s.Base, periodic, now); hp != nil && s.periodicPreempts(hp, now) {
				// budget is preserved while periodic work runs
				return hp
			}
			return aperiodic[0]
		}
		return SelectJob(s.Base, periodic, now)

	default:
		panic(fmt.Sprintf("unhandled server kind %q", string(s.Kind)))
	}
}

// Consume deducts up to duration from the budget and returns the time the
// aperiodic job may actually execute this tick.
func (s *Server) Consume(duration int64) int64 {
	switch s.Kind {
	case ServerBackground:
		return duration
	case ServerPolling:
		if s.Remaining <= 0 {
			return 0
		}
		consumed := duration
		if consumed > s.Remaining {
			consumed = s.Remaining
		}
		// use-it-fully-or-lose-it-now: one consumption sinks the rest
		s.Remaining = 0
		return consumed
	case ServerDeferrable:
		consumed := duration
		if consumed > s.Remaining {
			consumed = s.Remaining
		}
		s.Remaining -= consumed
		return consumed
	default:
		panic(fmt.Sprintf("unhandled server kind %q", string(s.Kind)))
	}
}

// periodicPreempts reports whether the highest-priority periodic job
// outranks the server itself, treated as a periodic task with the server's
// replenishment period (RM) or a deadline one period out (EDF).
func (s *Server) periodicPreempts(job *Job, now int64) bool {
	switch s.Base {
	case PolicyRM:
		return periodKey(job) < s.Period
	case PolicyEDF:
		return job.AbsoluteDeadline < now+s.Period
	default:
		panic(fmt.Sprintf("unhandled server base policy %q", string(s.Base)))
	}
}

// splitReady partitions the ready set into the periodic/dynamic subset and
// the aperiodic subset, preserving the deterministic ready order in both.
func splitReady(ready []*Job) (periodic, aperiodic []*Job) {
	for _, j := range ready {
		if j.Task.Kind == Aperiodic {
			aperiodic = append(aperiodic, j)
		} else {
			periodic = append(periodic, j)
		}
	}
	return periodic, aperiodic
}
