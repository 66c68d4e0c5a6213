package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/entrygate/internal/model"
)

// PlanViewer renders a resolved startup plan for human inspection
type PlanViewer struct {
	plan *model.StartupPlan
}

// NewPlanViewer creates a viewer for the given plan
func NewPlanViewer(plan *model.StartupPlan) *PlanViewer {
	return &PlanViewer{plan: plan}
}

// View renders the plan's wait targets, steps and final command
func (v *PlanViewer) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[Plan] %s\n", v.plan.Metadata.Name)
	if v.plan.Metadata.Description != "" {
		fmt.Fprintf(&b, "  %s\n", v.plan.Metadata.Description)
	}

	if len(v.plan.Wait) > 0 {
		fmt.Fprintf(&b, "\nWait targets (%d):\n", len(v.plan.Wait))
		for _, target := range v.plan.Wait {
			fmt.Fprintf(&b, "  %s/%s", target.Network(), target.Addr())
			var opts []string
			if target.Interval != "" {
				opts = append(opts, "interval="+target.Interval)
			}
			if target.Timeout != "" {
				opts = append(opts, "timeout="+target.Timeout)
			}
			if target.Attempts > 0 {
				opts = append(opts, fmt.Sprintf("attempts=%d", target.Attempts))
			}
			if len(opts) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(opts, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(v.plan.Steps) > 0 {
		fmt.Fprintf(&b, "\nSetup steps (%d):\n", len(v.plan.Steps))
		for i, step := range v.plan.Steps {
			fmt.Fprintf(&b, "  %d. %s [%s]\n", i+1, step.Name, step.Policy())
			fmt.Fprintf(&b, "     %s\n", step.Run)
		}
	}

	if len(v.plan.Command) > 0 {
		fmt.Fprintf(&b, "\nFinal command:\n  %s\n", strings.Join(v.plan.Command, " "))
	} else {
		b.WriteString("\nFinal command: (none, standalone plan)\n")
	}

	return b.String()
}
