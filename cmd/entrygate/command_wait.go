package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourceplane/entrygate/internal/config"
	"github.com/sourceplane/entrygate/internal/model"
	"github.com/sourceplane/entrygate/internal/probe"
	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for dependency targets only, no steps or handoff",
	Long: "Probe one or more host:port targets until all accept connections.\n" +
		"Targets come from --target flags, or from DATABASE_URL and WAIT_HOSTS\n" +
		"when no flags are given. All targets are probed concurrently.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return waitForTargets()
	},
}

func registerWaitCommand(root *cobra.Command) {
	root.AddCommand(waitCmd)

	waitCmd.Flags().StringArrayVarP(&waitTargets, "target", "t", nil, "Target as host:port (repeatable)")
	waitCmd.Flags().StringVar(&waitInterval, "interval", "", "Poll interval between attempts (default 2s)")
	waitCmd.Flags().StringVar(&waitTimeout, "timeout", "", "Max total wait per target (default: wait forever)")
	waitCmd.Flags().IntVar(&waitAttempts, "attempts", 0, "Max attempts per target (default: unbounded)")
}

func waitForTargets() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	targets, err := resolveWaitTargets(cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return model.ConfigError("no targets to wait for: pass --target or set DATABASE_URL / WAIT_HOSTS")
	}

	prober := probe.New()
	prober.Interval = cfg.Interval
	prober.Timeout = cfg.Timeout
	prober.Attempts = cfg.Attempts
	prober.Verbose = verboseMode || cfg.Verbose
	prober.Out = os.Stdout

	if waitInterval != "" {
		d, err := time.ParseDuration(waitInterval)
		if err != nil {
			return model.ConfigError(fmt.Sprintf("invalid --interval %q", waitInterval))
		}
		prober.Interval = d
	}
	if waitTimeout != "" {
		d, err := time.ParseDuration(waitTimeout)
		if err != nil {
			return model.ConfigError(fmt.Sprintf("invalid --timeout %q", waitTimeout))
		}
		prober.Timeout = d
	}
	if waitAttempts > 0 {
		prober.Attempts = waitAttempts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("□ Waiting for %d target(s)...\n", len(targets))
	if err := prober.WaitAll(ctx, targets); err != nil {
		return err
	}
	fmt.Println("✓ All targets ready")
	return nil
}

func resolveWaitTargets(cfg *config.Config) ([]model.ConnectionTarget, error) {
	if len(waitTargets) == 0 {
		return cfg.Targets()
	}

	targets := make([]model.ConnectionTarget, 0, len(waitTargets))
	for _, hostport := range waitTargets {
		target, err := config.ParseTarget(hostport)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}
