package main

import (
	"fmt"
	"os"

	"github.com/sourceplane/entrygate/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(exitcode.For(err))
	}
}
