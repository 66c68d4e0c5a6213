package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sourceplane/entrygate/internal/config"
	"github.com/sourceplane/entrygate/internal/envfile"
	"github.com/sourceplane/entrygate/internal/handoff"
	"github.com/sourceplane/entrygate/internal/loader"
	"github.com/sourceplane/entrygate/internal/probe"
	"github.com/sourceplane/entrygate/internal/runner"
	"github.com/sourceplane/entrygate/internal/sequence"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full startup sequence: wait, setup steps, handoff",
	Long: "Wait for every dependency target, run the plan's setup steps in order,\n" +
		"then replace this process with the plan's final command.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSequence()
	},
}

func registerRunCommand(root *cobra.Command) {
	root.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&planFile, "plan", "p", "entrygate.yaml", "Startup plan file path")
	runCmd.Flags().StringVar(&envFile, "env-file", "", "Load KEY=value pairs from this file before reading configuration")
	runCmd.Flags().BoolVar(&noExec, "no-exec", false, "Standalone mode: exit 0 after the steps instead of handing off")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print steps without executing them (implies --no-exec)")
}

func runSequence() error {
	if envFile != "" {
		if err := envfile.Load(envFile); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	verbose := verboseMode || cfg.Verbose

	plan, err := loader.LoadPlan(planFile)
	if err != nil {
		return err
	}

	// A plan without wait targets still waits on whatever the environment
	// names (DATABASE_URL, WAIT_HOSTS), so the plan file can stay generic
	// across deployments.
	if len(plan.Wait) == 0 {
		envTargets, err := cfg.Targets()
		if err != nil {
			return err
		}
		plan.Wait = envTargets
	}

	if verbose {
		fmt.Printf("□ Wait config: interval=%s timeout=%s attempts=%d targets=%d\n",
			cfg.Interval, cfg.Timeout, cfg.Attempts, len(plan.Wait))
	}

	// Signals abort the sequence during the probe and step phases. After
	// handoff the process no longer exists, and signal semantics belong to
	// the final command.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.New()
	prober.Interval = cfg.Interval
	prober.Timeout = cfg.Timeout
	prober.Attempts = cfg.Attempts
	prober.Verbose = verbose
	prober.Out = os.Stdout

	seq := &sequence.Sequencer{
		Prober:  prober,
		Runner:  runner.New("", os.Stdout, os.Stderr, dryRun),
		Exec:    handoff.Exec,
		Out:     os.Stdout,
		NoExec:  noExec || dryRun,
		Verbose: verbose,
	}

	return seq.Run(ctx, plan)
}
