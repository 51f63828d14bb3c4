package sim

import (
	"testing"
)

func periodicTask(id int, period, deadline int64) *Task {
	return &Task{ID: id, Kind: Periodic, ExecutionTime: 1, Period: period, Deadline: deadline}
}

func aperiodicTask(id int) *Task {
	return &Task{ID: id, Kind: Aperiodic, ExecutionTime: 1}
}

func TestSelectJob_EmptyReadySet(t *testing.T) {
	for _, p := range []Policy{PolicyRM, PolicyDM, PolicyEDF, PolicyLLF, PolicyFCFS, PolicySJF} {
		if got := SelectJob(p, nil, 0); got != nil {
			t.Errorf("%s: empty ready set: got %v, want nil", p, got)
		}
	}
}

func TestSelectJob_RMPrefersShorterPeriod(t *testing.T) {
	long := NewJob(periodicTask(1, 10, 10), 0)
	short := NewJob(periodicTask(2, 4, 4), 0)

	// arrival order must not matter for distinct periods
	if got := SelectJob(PolicyRM, []*Job{long, short}, 0); got != short {
		t.Errorf("RM [long short]: got %v, want %v", got, short)
	}
	if got := SelectJob(PolicyRM, []*Job{short, long}, 0); got != short {
		t.Errorf("RM [short long]: got %v, want %v", got, short)
	}
}

func TestSelectJob_RMRanksAperiodicLast(t *testing.T) {
	periodic := NewJob(periodicTask(1, 100, 100), 0)
	aperiodic := NewJob(aperiodicTask(2), 0)

	if got := SelectJob(PolicyRM, []*Job{aperiodic, periodic}, 0); got != periodic {
		t.Errorf("RM with aperiodic first: got %v, want %v", got, periodic)
	}
}

func TestSelectJob_DMPrefersShorterDeadline(t *testing.T) {
	loose := NewJob(periodicTask(1, 10, 9), 0)
	tight := NewJob(periodicTask(2, 10, 3), 0)

	if got := SelectJob(PolicyDM, []*Job{loose, tight}, 0); got != tight {
		t.Errorf("DM: got %v, want %v", got, tight)
	}
	if got := SelectJob(PolicyDM, []*Job{tight, loose}, 0); got != tight {
		t.Errorf("DM reversed: got %v, want %v", got, tight)
	}
}

func TestSelectJob_DMRanksAperiodicLast(t *testing.T) {
	periodic := NewJob(periodicTask(1, 50, 50), 0)
	aperiodic := NewJob(aperiodicTask(2), 0)

	if got := SelectJob(PolicyDM, []*Job{aperiodic, periodic}, 0); got != periodic {
		t.Errorf("DM with aperiodic first: got %v, want %v", got, periodic)
	}
}

func TestSelectJob_EDFPrefersEarlierAbsoluteDeadline(t *testing.T) {
	late := NewJob(periodicTask(1, 20, 20), 0)  // deadline 20
	early := NewJob(periodicTask(2, 20, 20), 0) // same relative deadline
	early.AbsoluteDeadline = 5

	if got := SelectJob(PolicyEDF, []*Job{late, early}, 0); got != early {
		t.Errorf("EDF: got %v, want %v", got, early)
	}
}

func TestSelectJob_EDFTieBreakKeepsEarlierEntry(t *testing.T) {
	first := NewJob(periodicTask(1, 10, 10), 0)
	second := NewJob(periodicTask(2, 10, 10), 0)
	// identical absolute deadlines: the earlier ready-set entry wins

	if got := SelectJob(PolicyEDF, []*Job{first, second}, 0); got != first {
		t.Errorf("EDF tie: got %v, want %v", got, first)
	}
	if got := SelectJob(PolicyEDF, []*Job{second, first}, 0); got != second {
		t.Errorf("EDF tie reversed: got %v, want %v", got, second)
	}
}

func TestSelectJob_LLFPrefersLeastLaxity(t *testing.T) {
	// laxity = deadline - now - remaining
	slack := NewJob(&Task{ID: 1, Kind: Periodic, ExecutionTime: 2, Period: 12, Deadline: 12}, 0) // laxity 10
	urgent := NewJob(&Task{ID: 2, Kind: Periodic, ExecutionTime: 5, Period: 8, Deadline: 8}, 0)  // laxity 3

	if got := SelectJob(PolicyLLF, []*Job{slack, urgent}, 0); got != urgent {
		t.Errorf("LLF: got %v, want %v", got, urgent)
	}
}

func TestSelectJob_LLFRecomputesWithClock(t *testing.T) {
	// both laxities shrink with the clock; relative order only flips as
	// remaining work changes
	a := NewJob(&Task{ID: 1, Kind: Periodic, ExecutionTime: 4, Period: 10, Deadline: 10}, 0) // laxity 6 at t=0
	b := NewJob(&Task{ID: 2, Kind: Periodic, ExecutionTime: 2, Period: 10, Deadline: 10}, 0) // laxity 8 at t=0

	if got := SelectJob(PolicyLLF, []*Job{b, a}, 0); got != a {
		t.Errorf("LLF at t=0: got %v, want %v", got, a)
	}

	// a executes 3 ticks: remaining 1, laxity at t=3 is 10-3-1=6 vs b 10-3-2=5
	a.Advance(0, 3)
	if got := SelectJob(PolicyLLF, []*Job{b, a}, 3); got != b {
		t.Errorf("LLF at t=3: got %v, want %v", got, b)
	}
}

func TestSelectJob_FCFSPrefersEarlierRelease(t *testing.T) {
	late := NewJob(periodicTask(1, 10, 10), 6)
	early := NewJob(periodicTask(2, 10, 10), 2)

	if got := SelectJob(PolicyFCFS, []*Job{late, early}, 6); got != early {
		t.Errorf("FCFS: got %v, want %v", got, early)
	}
}

func TestSelectJob_SJFPrefersShortestRemaining(t *testing.T) {
	long := NewJob(&Task{ID: 1, Kind: Periodic, ExecutionTime: 7, Period: 20, Deadline: 20}, 0)
	short := NewJob(&Task{ID: 2, Kind: Periodic, ExecutionTime: 3, Period: 20, Deadline: 20}, 0)

	if got := SelectJob(PolicySJF, []*Job{long, short}, 0); got != short {
		t.Errorf("SJF: got %v, want %v", got, short)
	}

	// remaining, not total: the long job nearly done outranks the short one
	long.Advance(0, 6)
	if got := SelectJob(PolicySJF, []*Job{long, short}, 6); got != long {
		t.Errorf("SJF after progress: got %v, want %v", got, long)
	}
}

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		name string
		want Policy
	}{
		{"rm", PolicyRM},
		{"RM", PolicyRM},
		{"dm", PolicyDM},
		{"edf", PolicyEDF},
		{"EDF", PolicyEDF},
		{"llf", PolicyLLF},
		{"lst", PolicyLLF},
		{"fcfs", PolicyFCFS},
		{"fifo", PolicyFCFS},
		{"sjf", PolicySJF},
	}
	for _, c := range cases {
		got, err := ParsePolicy(c.name)
		if err != nil {
			t.Errorf("ParsePolicy(%q): unexpected error %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePolicy(%q): got %v, want %v", c.name, got, c.want)
		}
	}

	if _, err := ParsePolicy("round-robin"); err == nil {
		t.Error("ParsePolicy(round-robin): expected error, got nil")
	}
}
