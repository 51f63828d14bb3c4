// Package taskfile reads and writes the plain-text task description format:
//
//	P ei pi            periodic: release=0, deadline=pi
//	P ri ei pi         periodic: deadline=pi
//	P ri ei pi di      periodic: explicit deadline
//	D ei pi di         dynamic: release=0, explicit deadline
//	A ri ei            aperiodic: no period or deadline
//	S es ps TYPE SCHED server: TYPE in {POLLER, DEFERABLE, BACKGROUND}, SCHED in {RM, EDF}
//	# comment / blank  ignored
//
// Unrecognized lines are skipped with a warning. A recognized keyword with
// the wrong field count or unparseable numbers is fatal for the file, with
// the offending line number.
package taskfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aliemreo/real-time-scheduling/sim"
)

// ParseError is a fatal input error tied to a line of the task file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseFile reads a task file from disk. The returned server config is nil
// when the file has no S line, selecting plain periodic scheduling.
func ParseFile(path string) (*sim.TaskSet, *sim.ServerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening task file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the task description format from r.
func Parse(r io.Reader) (*sim.TaskSet, *sim.ServerConfig, error) {
	ts := sim.NewTaskSet()
	var server *sim.ServerConfig

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		keyword := strings.ToUpper(fields[0])
		var err error
		switch keyword {
		case "P":
			err = parsePeriodic(fields, ts)
		case "D":
			err = parseDynamic(fields, ts)
		case "A":
			err = parseAperiodic(fields, ts)
		case "S":
			server, err = parseServer(fields)
		default:
			logrus.Warnf("line %d: unknown line format, ignoring: %s", lineNum, line)
			continue
		}
		if err != nil {
			return nil, nil, &ParseError{Line: lineNum, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading task file: %w", err)
	}
	return ts, server, nil
}

// parsePeriodic handles the three periodic arities: P ei pi, P ri ei pi,
// and P ri ei pi di.
func parsePeriodic(fields []string, ts *sim.TaskSet) error {
	values, err := parseInts(fields[1:])
	if err != nil {
		return err
	}
	var release, execution, period, deadline int64
	switch len(values) {
	case 2:
		execution, period = values[0], values[1]
	case 3:
		release, execution, period = values[0], values[1], values[2]
	case 4:
		release, execution, period, deadline = values[0], values[1], values[2], values[3]
	default:
		return fmt.Errorf("invalid periodic task format, expected 'P [ri] ei pi [di]', got %d fields", len(values))
	}
	_, err = ts.Add(sim.Periodic, release, execution, period, deadline)
	return err
}

// parseDynamic handles D ei pi di; dynamic tasks always release at 0.
func parseDynamic(fields []string, ts *sim.TaskSet) error {
	values, err := parseInts(fields[1:])
	if err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("invalid dynamic task format, expected 'D ei pi di', got %d fields", len(values))
	}
	_, err = ts.Add(sim.Dynamic, 0, values[0], values[1], values[2])
	return err
}

// parseAperiodic handles A ri ei; aperiodic tasks have no period or deadline.
func parseAperiodic(fields []string, ts *sim.TaskSet) error {
	values, err := parseInts(fields[1:])
	if err != nil {
		return err
	}
	if len(values) != 2 {
		return fmt.Errorf("invalid aperiodic task format, expected 'A ri ei', got %d fields", len(values))
	}
	_, err = ts.Add(sim.Aperiodic, values[0], values[1], 0, 0)
	return err
}

// parseServer handles S es ps TYPE SCHED.
func parseServer(fields []string) (*sim.ServerConfig, error) {
	if len(fields) != 5 {
		return nil, fmt.Errorf("invalid server format, expected 'S es ps TYPE SCHED', got %d fields", len(fields)-1)
	}
	values, err := parseInts(fields[1:3])
	if err != nil {
		return nil, err
	}
	kind, err := sim.ParseServerKind(fields[3])
	if err != nil {
		return nil, err
	}
	base, err := sim.ParsePolicy(fields[4])
	if err != nil {
		return nil, err
	}
	cfg := &sim.ServerConfig{
		Kind:       kind,
		Budget:     values[0],
		Period:     values[1],
		BasePolicy: base,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseInts(fields []string) ([]int64, error) {
	values := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric field %q", f)
		}
		values[i] = v
	}
	return values, nil
}

// Write emits a task set (and optional server config) in the text format,
// one record per line. Deadlines equal to the period are left implicit.
func Write(w io.Writer, ts *sim.TaskSet, server *sim.ServerConfig) error {
	for _, t := range ts.Tasks {
		var line string
		switch t.Kind {
		case sim.Periodic:
			if t.Deadline != t.Period {
				line = fmt.Sprintf("P %d %d %d %d", t.FirstRelease, t.ExecutionTime, t.Period, t.Deadline)
			} else if t.FirstRelease != 0 {
				line = fmt.Sprintf("P %d %d %d", t.FirstRelease, t.ExecutionTime, t.Period)
			} else {
				line = fmt.Sprintf("P %d %d", t.ExecutionTime, t.Period)
			}
		case sim.Dynamic:
			line = fmt.Sprintf("D %d %d %d", t.ExecutionTime, t.Period, t.Deadline)
		case sim.Aperiodic:
			line = fmt.Sprintf("A %d %d", t.FirstRelease, t.ExecutionTime)
		default:
			return fmt.Errorf("unhandled task kind %q", string(t.Kind))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if server != nil {
		if _, err := fmt.Fprintf(w, "S %d %d %s %s\n",
			server.Budget, server.Period, formatServerKind(server.Kind), strings.ToUpper(string(server.BasePolicy))); err != nil {
			return err
		}
	}
	return nil
}

// formatServerKind renders the input format's keyword, including its
// historical DEFERABLE spelling.
func formatServerKind(k sim.ServerKind) string {
	switch k {
	case sim.ServerPolling:
		return "POLLER"
	case sim.ServerDeferrable:
		return "DEFERABLE"
	case sim.ServerBackground:
		return "BACKGROUND"
	default:
		return strings.ToUpper(string(k))
	}
}
