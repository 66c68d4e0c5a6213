// Package exitcode defines the process exit codes. These form the
// operational contract with container orchestrators and operators: each
// failure category gets its own code so a deployment can tell where the
// startup sequence stalled.
package exitcode

import (
	"context"
	"errors"

	"github.com/sourceplane/entrygate/internal/model"
	"github.com/sourceplane/entrygate/internal/probe"
	"github.com/sourceplane/entrygate/internal/runner"
)

const (
	Success      = 0 // handoff reached, or standalone run completed
	RuntimeError = 1 // any other failure
	ConfigError  = 2 // missing or invalid configuration
	Unreachable  = 3 // dependency never became reachable
	StepFailure  = 4 // a fatal setup step failed
	Interrupted  = 5 // operator cancelled during probe or step phase
)

// For maps an error from the sequencer to its exit code.
func For(err error) int {
	if err == nil {
		return Success
	}

	var configErr model.ConfigError
	if errors.As(err, &configErr) {
		return ConfigError
	}

	var unreachableErr *probe.UnreachableError
	if errors.As(err, &unreachableErr) {
		return Unreachable
	}

	var stepErr *runner.StepError
	if errors.As(err, &stepErr) {
		return StepFailure
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Interrupted
	}

	return RuntimeError
}
