package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sourceplane/entrygate/internal/model"
)

// StepError reports a step whose failure policy aborted the plan.
type StepError struct {
	Step string
	Err  error
}

// Error returns the error message for a StepError.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying command error.
func (e *StepError) Unwrap() error { return e.Err }

// Runner executes a plan's setup steps strictly in declared order. Steps are
// never retried; retry belongs to the readiness prober.
type Runner struct {
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
	DryRun  bool
}

// New returns a runner that executes steps in workDir with output wired to
// the given writers.
func New(workDir string, stdout, stderr io.Writer, dryRun bool) *Runner {
	return &Runner{
		WorkDir: workDir,
		Stdout:  stdout,
		Stderr:  stderr,
		DryRun:  dryRun,
	}
}

// Run executes steps in order and returns the per-step results. A failing
// step with policy abort stops the plan: the error names the step, and the
// remaining steps are recorded as skipped. A failing step with policy
// continue is logged as a warning and the plan proceeds.
func (r *Runner) Run(ctx context.Context, steps []model.SetupStep) ([]model.StepResult, error) {
	results := make([]model.StepResult, 0, len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return appendSkipped(results, steps[i:]), fmt.Errorf("setup interrupted before step %s: %w", step.Name, err)
		}

		fmt.Fprintf(r.Stdout, "→ Step %s\n", step.Name)
		if r.DryRun {
			fmt.Fprintf(r.Stdout, "    %s\n", step.Run)
			results = append(results, model.StepResult{Name: step.Name, Status: model.StatusSucceeded})
			continue
		}

		cmd := exec.CommandContext(ctx, "sh", "-c", step.Run)
		cmd.Dir = r.WorkDir
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		cmd.Env = os.Environ()

		err := cmd.Run()
		if err == nil {
			results = append(results, model.StepResult{Name: step.Name, Status: model.StatusSucceeded})
			continue
		}

		if step.Policy() == model.PolicyContinue {
			fmt.Fprintf(r.Stderr, "⚠ Step %s failed (tolerated): %v\n", step.Name, err)
			results = append(results, model.StepResult{Name: step.Name, Status: model.StatusFailed, Tolerated: true, Err: err})
			continue
		}

		results = append(results, model.StepResult{Name: step.Name, Status: model.StatusFailed, Err: err})
		return appendSkipped(results, steps[i+1:]), &StepError{Step: step.Name, Err: err}
	}

	return results, nil
}

func appendSkipped(results []model.StepResult, remaining []model.SetupStep) []model.StepResult {
	for _, step := range remaining {
		results = append(results, model.StepResult{Name: step.Name, Status: model.StatusSkipped})
	}
	return results
}
