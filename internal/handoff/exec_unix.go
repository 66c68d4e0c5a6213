//go:build unix

package handoff

import (
	"os"
	"syscall"
)

// Exec replaces the current process with the given command. On success it
// never returns; control belongs to the new process from then on.
func Exec(argv []string) error {
	path, err := resolve(argv)
	if err != nil {
		return err
	}
	return syscall.Exec(path, argv, os.Environ())
}
