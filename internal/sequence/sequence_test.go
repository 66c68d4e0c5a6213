package sequence

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sourceplane/entrygate/internal/model"
)

type fakeProber struct {
	calls int
	err   error
}

func (p *fakeProber) WaitAll(ctx context.Context, targets []model.ConnectionTarget) error {
	p.calls++
	return p.err
}

type fakeRunner struct {
	calls int
	steps []model.SetupStep
	err   error
}

func (r *fakeRunner) Run(ctx context.Context, steps []model.SetupStep) ([]model.StepResult, error) {
	r.calls++
	r.steps = steps
	results := make([]model.StepResult, 0, len(steps))
	for _, step := range steps {
		results = append(results, model.StepResult{Name: step.Name, Status: model.StatusSucceeded})
	}
	return results, r.err
}

type execRecorder struct {
	calls int
	argv  []string
}

func (e *execRecorder) exec(argv []string) error {
	e.calls++
	e.argv = argv
	return nil
}

func testPlan() *model.StartupPlan {
	return &model.StartupPlan{
		Wait:    []model.ConnectionTarget{{Host: "db", Port: 5432}},
		Steps:   []model.SetupStep{{Name: "migrate", Run: "true"}},
		Command: []string{"serve", "--port", "8000"},
	}
}

func newSequencer(p *fakeProber, r *fakeRunner, e *execRecorder) *Sequencer {
	return &Sequencer{
		Prober: p,
		Runner: r,
		Exec:   e.exec,
		Out:    new(bytes.Buffer),
	}
}

func TestRunHandsOffOnceWithExactArgv(t *testing.T) {
	prober := &fakeProber{}
	runner := &fakeRunner{}
	exec := &execRecorder{}

	seq := newSequencer(prober, runner, exec)
	if err := seq.Run(context.Background(), testPlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prober.calls != 1 || runner.calls != 1 {
		t.Fatalf("prober calls = %d, runner calls = %d, want 1 each", prober.calls, runner.calls)
	}
	if exec.calls != 1 {
		t.Fatalf("exec calls = %d, want exactly 1", exec.calls)
	}

	want := []string{"serve", "--port", "8000"}
	if len(exec.argv) != len(want) {
		t.Fatalf("argv = %v, want %v", exec.argv, want)
	}
	for i := range want {
		if exec.argv[i] != want[i] {
			t.Fatalf("argv = %v, want %v", exec.argv, want)
		}
	}
}

func TestRunUnreachableDependencySkipsSteps(t *testing.T) {
	prober := &fakeProber{err: errors.New("db:5432 unreachable")}
	runner := &fakeRunner{}
	exec := &execRecorder{}

	seq := newSequencer(prober, runner, exec)
	err := seq.Run(context.Background(), testPlan())
	if err == nil {
		t.Fatal("expected error when the dependency is unreachable")
	}

	if runner.calls != 0 {
		t.Fatalf("runner calls = %d, want 0: no step may run before readiness", runner.calls)
	}
	if exec.calls != 0 {
		t.Fatalf("exec calls = %d, want 0", exec.calls)
	}
}

func TestRunFatalStepSkipsHandoff(t *testing.T) {
	prober := &fakeProber{}
	runner := &fakeRunner{err: errors.New("step collectstatic failed")}
	exec := &execRecorder{}

	seq := newSequencer(prober, runner, exec)
	err := seq.Run(context.Background(), testPlan())
	if err == nil {
		t.Fatal("expected error when a fatal step fails")
	}
	if exec.calls != 0 {
		t.Fatalf("exec calls = %d, want 0 after a fatal step failure", exec.calls)
	}
}

func TestRunMissingCommandIsConfigError(t *testing.T) {
	prober := &fakeProber{}
	runner := &fakeRunner{}
	exec := &execRecorder{}

	plan := testPlan()
	plan.Command = nil

	seq := newSequencer(prober, runner, exec)
	err := seq.Run(context.Background(), plan)

	var configErr model.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if prober.calls != 0 || runner.calls != 0 {
		t.Fatalf("prober calls = %d, runner calls = %d, want 0: config errors precede all side effects", prober.calls, runner.calls)
	}
}

func TestRunNoExecStandaloneMode(t *testing.T) {
	prober := &fakeProber{}
	runner := &fakeRunner{}
	exec := &execRecorder{}

	plan := testPlan()
	plan.Command = nil

	seq := newSequencer(prober, runner, exec)
	seq.NoExec = true
	if err := seq.Run(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}
	if exec.calls != 0 {
		t.Fatalf("exec calls = %d, want 0 in standalone mode", exec.calls)
	}
}

func TestRunInvalidPlanBeforeProbe(t *testing.T) {
	prober := &fakeProber{}
	runner := &fakeRunner{}
	exec := &execRecorder{}

	plan := testPlan()
	plan.Wait[0].Host = ""

	seq := newSequencer(prober, runner, exec)
	err := seq.Run(context.Background(), plan)

	var configErr model.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if prober.calls != 0 {
		t.Fatalf("prober calls = %d, want 0", prober.calls)
	}
}

func TestRunEmptyWaitAndSteps(t *testing.T) {
	prober := &fakeProber{}
	runner := &fakeRunner{}
	exec := &execRecorder{}

	plan := &model.StartupPlan{Command: []string{"serve"}}

	seq := newSequencer(prober, runner, exec)
	if err := seq.Run(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prober.calls != 0 || runner.calls != 0 {
		t.Fatalf("prober calls = %d, runner calls = %d, want 0 each for an empty plan", prober.calls, runner.calls)
	}
	if exec.calls != 1 {
		t.Fatalf("exec calls = %d, want 1", exec.calls)
	}
}
