// Package handoff transfers control to the final long-running command after
// the startup sequence completes. On unix this replaces the process image via
// execve, so signals meant for the service reach it directly instead of being
// absorbed by a supervisor. Elsewhere the command runs as a direct child with
// all signals forwarded.
package handoff

import (
	"os/exec"

	"github.com/sourceplane/entrygate/internal/model"
)

// resolve validates the argument vector and finds the executable.
func resolve(argv []string) (string, error) {
	if len(argv) == 0 || argv[0] == "" {
		return "", model.ConfigError("no final command to hand off to")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return "", model.ConfigError("final command not found: " + argv[0])
	}
	return path, nil
}
