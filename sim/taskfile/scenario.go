package taskfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aliemreo/real-time-scheduling/sim"
)

// Scenario is a structured simulation description, loadable from a YAML
// file as an alternative to the line-oriented text format. It carries what
// a run needs in one document: horizon, policies, tasks, and an optional
// server block.
type Scenario struct {
	Version  string      `yaml:"version"`
	Horizon  int64       `yaml:"horizon"`
	Policies []string    `yaml:"policies,omitempty"`
	Server   *ServerSpec `yaml:"server,omitempty"`
	Tasks    []TaskSpec  `yaml:"tasks"`
}

// TaskSpec is one task record. Kind is the input format's letter: P, D, A.
type TaskSpec struct {
	Kind      string `yaml:"kind"`
	Release   int64  `yaml:"release,omitempty"`
	Execution int64  `yaml:"execution"`
	Period    int64  `yaml:"period,omitempty"`
	Deadline  int64  `yaml:"deadline,omitempty"` // 0 defaults to the period
}

// ServerSpec configures the aperiodic server for the scenario.
type ServerSpec struct {
	Kind   string `yaml:"kind"` // background, polling, deferrable
	Budget int64  `yaml:"budget,omitempty"`
	Period int64  `yaml:"period,omitempty"`
	Policy string `yaml:"policy"` // rm or edf
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(sc.Tasks) == 0 {
		return nil, fmt.Errorf("scenario has no tasks")
	}
	return &sc, nil
}

// TaskSet materializes the scenario's task records.
func (sc *Scenario) TaskSet() (*sim.TaskSet, error) {
	ts := sim.NewTaskSet()
	for i, spec := range sc.Tasks {
		var kind sim.TaskKind
		switch spec.Kind {
		case "P", "p", "periodic":
			kind = sim.Periodic
		case "D", "d", "dynamic":
			kind = sim.Dynamic
		case "A", "a", "aperiodic":
			kind = sim.Aperiodic
		default:
			return nil, fmt.Errorf("task %d: unknown kind %q", i+1, spec.Kind)
		}
		if _, err := ts.Add(kind, spec.Release, spec.Execution, spec.Period, spec.Deadline); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return ts, nil
}

// ServerConfig materializes the scenario's server block, or nil when the
// scenario selects plain periodic scheduling.
func (sc *Scenario) ServerConfig() (*sim.ServerConfig, error) {
	if sc.Server == nil {
		return nil, nil
	}
	kind, err := sim.ParseServerKind(sc.Server.Kind)
	if err != nil {
		return nil, err
	}
	base, err := sim.ParsePolicy(sc.Server.Policy)
	if err != nil {
		return nil, err
	}
	cfg := &sim.ServerConfig{
		Kind:       kind,
		Budget:     sc.Server.Budget,
		Period:     sc.Server.Period,
		BasePolicy: base,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PolicyList resolves the scenario's policy names. An empty list falls back
// to the historical default of RM, EDF, and LLF.
func (sc *Scenario) PolicyList() ([]sim.Policy, error) {
	if len(sc.Policies) == 0 {
		return []sim.Policy{sim.PolicyRM, sim.PolicyEDF, sim.PolicyLLF}, nil
	}
	out := make([]sim.Policy, 0, len(sc.Policies))
	for _, name := range sc.Policies {
		p, err := sim.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
