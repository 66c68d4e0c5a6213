package main

import (
	"fmt"

	"github.com/sourceplane/entrygate/internal/loader"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a startup plan file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validatePlan()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&planFile, "plan", "p", "entrygate.yaml", "Startup plan file path")
}

func validatePlan() error {
	fmt.Println("□ Validating plan...")
	plan, err := loader.LoadPlan(planFile)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Plan %s is valid: %d wait target(s), %d step(s)\n",
		plan.Metadata.Name, len(plan.Wait), len(plan.Steps))
	return nil
}
