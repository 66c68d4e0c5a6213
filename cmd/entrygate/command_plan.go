package main

import (
	"fmt"

	"github.com/sourceplane/entrygate/internal/loader"
	"github.com/sourceplane/entrygate/internal/render"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the resolved startup plan",
	Long:  "Load a plan file and print its wait targets, setup steps and final command after env expansion.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPlan()
	},
}

func registerPlanCommand(root *cobra.Command) {
	root.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planFile, "plan", "p", "entrygate.yaml", "Startup plan file path")
}

func showPlan() error {
	plan, err := loader.LoadPlan(planFile)
	if err != nil {
		return err
	}

	viewer := render.NewPlanViewer(plan)
	fmt.Print(viewer.View())
	return nil
}
