package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aliemreo/real-time-scheduling/sim"
	"github.com/aliemreo/real-time-scheduling/sim/taskfile"
)

var (
	runPolicies []string // Policies to simulate when no server is configured
	runHorizon  int64    // Total simulation length (in ticks)
	runDetailed bool     // Include utilization analysis and timeline summary
	runScenario string   // YAML scenario file, alternative to text task files
)

// runCmd simulates each input task file under the requested policies, or
// under its configured aperiodic server when the file carries an S line.
var runCmd = &cobra.Command{
	Use:   "run [task files...]",
	Short: "Run the scheduling simulation",
	Args: func(cmd *cobra.Command, args []string) error {
		if runScenario == "" && len(args) == 0 {
			return fmt.Errorf("requires at least one task file or --scenario")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		failed := false

		if runScenario != "" {
			if err := runScenarioFile(runScenario); err != nil {
				logrus.Errorf("scenario %s: %v", runScenario, err)
				failed = true
			}
		}

		for _, path := range args {
			fmt.Printf("\n========== Processing file: %s ==========\n", path)
			if err := runTaskFile(path); err != nil {
				logrus.Errorf("%s: %v", path, err)
				failed = true
			}
		}

		if failed {
			cmd.SilenceUsage = true
			logrus.Exit(1)
		}
	},
}

func runTaskFile(path string) error {
	tasks, serverCfg, err := taskfile.ParseFile(path)
	if err != nil {
		return err
	}
	if problems := tasks.Validate(); len(problems) > 0 {
		for _, p := range problems {
			logrus.Errorf("%s: %s", path, p)
		}
		return fmt.Errorf("task set failed validation")
	}

	if serverCfg == nil {
		policies, err := resolvePolicies(runPolicies)
		if err != nil {
			return err
		}
		for _, policy := range policies {
			s := sim.NewSimulator(tasks, policy, runHorizon)
			s.Run()
			report(policy.Name(), s, tasks)
		}
		return nil
	}

	server, err := sim.NewServer(*serverCfg)
	if err != nil {
		return err
	}
	s := sim.NewServerSimulator(tasks, server, runHorizon)
	s.Run()
	name := fmt.Sprintf("%s server (%s)", serverCfg.Kind, serverCfg.BasePolicy.Name())
	report(name, s, tasks)
	return nil
}

func runScenarioFile(path string) error {
	sc, err := taskfile.LoadScenario(path)
	if err != nil {
		return err
	}
	tasks, err := sc.TaskSet()
	if err != nil {
		return err
	}
	serverCfg, err := sc.ServerConfig()
	if err != nil {
		return err
	}
	horizon := sc.Horizon
	if horizon <= 0 {
		horizon = runHorizon
	}

	if serverCfg != nil {
		server, err := sim.NewServer(*serverCfg)
		if err != nil {
			return err
		}
		s := sim.NewServerSimulator(tasks, server, horizon)
		s.Run()
		report(fmt.Sprintf("%s server (%s)", serverCfg.Kind, serverCfg.BasePolicy.Name()), s, tasks)
		return nil
	}

	policies, err := sc.PolicyList()
	if err != nil {
		return err
	}
	for _, policy := range policies {
		s := sim.NewSimulator(tasks, policy, horizon)
		s.Run()
		report(policy.Name(), s, tasks)
	}
	return nil
}

// resolvePolicies maps the --policy flag values; empty selects the
// historical default of RM, EDF, and LLF.
func resolvePolicies(names []string) ([]sim.Policy, error) {
	if len(names) == 0 {
		return []sim.Policy{sim.PolicyRM, sim.PolicyEDF, sim.PolicyLLF}, nil
	}
	out := make([]sim.Policy, 0, len(names))
	for _, name := range names {
		p, err := sim.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func init() {
	runCmd.Flags().StringSliceVar(&runPolicies, "policy", nil, "Scheduling policies to simulate (rm, dm, edf, llf, fcfs, sjf); default rm,edf,llf")
	runCmd.Flags().Int64Var(&runHorizon, "horizon", 50, "Total simulation length (in ticks)")
	runCmd.Flags().BoolVarP(&runDetailed, "detailed", "d", false, "Print utilization analysis and timeline summary")
	runCmd.Flags().StringVar(&runScenario, "scenario", "", "YAML scenario file")

	rootCmd.AddCommand(runCmd)
}
