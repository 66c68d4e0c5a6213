package loader

import (
	"fmt"
	"os"

	"github.com/sourceplane/entrygate/internal/model"
	"github.com/sourceplane/entrygate/internal/schema"
	"gopkg.in/yaml.v3"
)

// LoadPlan loads, schema-validates and parses a startup plan YAML file,
// applies defaults and expands ${VAR} environment references in step
// commands and target hosts.
func LoadPlan(path string) (*model.StartupPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePlan(data); err != nil {
		return nil, fmt.Errorf("plan %s failed schema validation: %w", path, err)
	}

	var plan model.StartupPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan YAML: %w", err)
	}

	applyDefaults(&plan)
	expandEnv(&plan)

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}

func applyDefaults(plan *model.StartupPlan) {
	for i := range plan.Wait {
		if plan.Wait[i].Protocol == "" {
			plan.Wait[i].Protocol = "tcp"
		}
		if plan.Wait[i].Interval == "" {
			plan.Wait[i].Interval = model.DefaultInterval.String()
		}
	}
	for i := range plan.Steps {
		if plan.Steps[i].OnFailure == "" {
			plan.Steps[i].OnFailure = model.PolicyAbort
		}
	}
}

// expandEnv resolves ${VAR} references from the process environment. Unset
// variables expand to the empty string, same as a shell would.
func expandEnv(plan *model.StartupPlan) {
	for i := range plan.Wait {
		plan.Wait[i].Host = os.ExpandEnv(plan.Wait[i].Host)
	}
	for i := range plan.Steps {
		plan.Steps[i].Run = os.ExpandEnv(plan.Steps[i].Run)
	}
	for i := range plan.Command {
		plan.Command[i] = os.ExpandEnv(plan.Command[i])
	}
}
