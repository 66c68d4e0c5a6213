//go:build !unix

package handoff

import (
	"os"
	"os/exec"
	"os/signal"
)

// Exec runs the given command as a direct child, forwards every received
// signal to it, and exits with the child's exit code. This is the substitute
// for process replacement on platforms without execve; it only returns if
// the command cannot be started.
func Exec(argv []string) error {
	path, err := resolve(argv)
	if err != nil {
		return err
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Args = argv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs)
	go func() {
		for sig := range sigs {
			cmd.Process.Signal(sig)
		}
	}()

	err = cmd.Wait()
	signal.Stop(sigs)
	close(sigs)

	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
