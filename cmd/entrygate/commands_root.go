package main

import "github.com/spf13/cobra"

var (
	planFile     string
	envFile      string
	noExec       bool
	dryRun       bool
	verboseMode  bool
	waitTargets  []string
	waitInterval string
	waitTimeout  string
	waitAttempts int
)

var rootCmd = &cobra.Command{
	Use:   "entrygate",
	Short: "Readiness-gated startup sequencer",
	Long: "entrygate waits for dependencies to accept connections, runs an ordered\n" +
		"list of setup steps, then hands control to the long-running service command.\n" +
		"Built to be a container entrypoint.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Verbose progress output (per-attempt probe lines, step results, resolved wait config)")

	registerRunCommand(rootCmd)
	registerWaitCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerPlanCommand(rootCmd)
}
