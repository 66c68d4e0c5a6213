// Package sequence drives the startup flow: wait for dependency readiness,
// run the setup steps in order, then hand control to the final command.
package sequence

import (
	"context"
	"fmt"
	"io"

	"github.com/sourceplane/entrygate/internal/model"
)

// Prober waits for dependency readiness.
type Prober interface {
	WaitAll(ctx context.Context, targets []model.ConnectionTarget) error
}

// StepRunner executes setup steps in order.
type StepRunner interface {
	Run(ctx context.Context, steps []model.SetupStep) ([]model.StepResult, error)
}

// ExecFunc transfers control to the final command. A successful call never
// returns on platforms with process replacement.
type ExecFunc func(argv []string) error

// Sequencer orchestrates probe → steps → handoff for one plan invocation.
type Sequencer struct {
	Prober  Prober
	Runner  StepRunner
	Exec    ExecFunc
	Out     io.Writer
	NoExec  bool // standalone mode: finish after the steps instead of handing off
	Verbose bool
}

// Run executes the plan. The final command is validated up front: a plan
// without one is a configuration error unless NoExec is set, caught before
// any network attempt or step execution.
func (s *Sequencer) Run(ctx context.Context, plan *model.StartupPlan) error {
	if !s.NoExec && len(plan.Command) == 0 {
		return model.ConfigError("startup plan has no final command; use --no-exec for a standalone run")
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	if len(plan.Wait) > 0 {
		fmt.Fprintf(s.Out, "□ Waiting for %d dependency target(s)...\n", len(plan.Wait))
		if err := s.Prober.WaitAll(ctx, plan.Wait); err != nil {
			return err
		}
		fmt.Fprintln(s.Out, "✓ All dependencies ready")
	}

	if len(plan.Steps) > 0 {
		fmt.Fprintf(s.Out, "□ Running %d setup step(s)...\n", len(plan.Steps))
		results, err := s.Runner.Run(ctx, plan.Steps)
		if s.Verbose {
			s.report(results)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.Out, "✓ Setup complete")
	}

	if s.NoExec {
		fmt.Fprintln(s.Out, "✓ Standalone run finished")
		return nil
	}

	fmt.Fprintf(s.Out, "□ Handing off to: %v\n", plan.Command)
	return s.Exec(plan.Command)
}

func (s *Sequencer) report(results []model.StepResult) {
	for _, res := range results {
		switch {
		case res.Status == model.StatusSucceeded:
			fmt.Fprintf(s.Out, "  ✓ %s\n", res.Name)
		case res.Tolerated:
			fmt.Fprintf(s.Out, "  ⚠ %s (failure tolerated)\n", res.Name)
		case res.Status == model.StatusSkipped:
			fmt.Fprintf(s.Out, "  - %s (skipped)\n", res.Name)
		default:
			fmt.Fprintf(s.Out, "  ✗ %s\n", res.Name)
		}
	}
}
