package model

// StartupPlan is the full declarative startup sequence: dependencies to wait
// for, setup steps to run in order, and the final command to hand off to.
type StartupPlan struct {
	APIVersion string             `yaml:"apiVersion" json:"apiVersion"`
	Kind       string             `yaml:"kind" json:"kind"`
	Metadata   Metadata           `yaml:"metadata" json:"metadata"`
	Wait       []ConnectionTarget `yaml:"wait,omitempty" json:"wait,omitempty"`
	Steps      []SetupStep        `yaml:"steps,omitempty" json:"steps,omitempty"`
	Command    []string           `yaml:"command,omitempty" json:"command,omitempty"`
}

// Metadata identifies a plan document
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// FailurePolicy controls what happens to the rest of the sequence when a
// setup step fails.
type FailurePolicy string

const (
	// PolicyAbort stops the sequence on failure. This is the default.
	PolicyAbort FailurePolicy = "abort"

	// PolicyContinue logs the failure and moves on. Used for idempotent
	// steps that fail benignly when their effect already exists, e.g.
	// bootstrap account creation.
	PolicyContinue FailurePolicy = "continue"
)

// SetupStep is a single named setup action, invoked as an opaque shell
// command with the usual exit-status contract: zero is success.
type SetupStep struct {
	Name      string        `yaml:"name" json:"name"`
	Run       string        `yaml:"run" json:"run"`
	OnFailure FailurePolicy `yaml:"onFailure,omitempty" json:"onFailure,omitempty"` // abort, continue
}

// Policy returns the step's effective failure policy, defaulting to abort.
func (s SetupStep) Policy() FailurePolicy {
	if s.OnFailure == PolicyContinue {
		return PolicyContinue
	}
	return PolicyAbort
}

// Validate checks the plan's structural invariants beyond what the document
// schema covers. It never touches the network.
func (p *StartupPlan) Validate() error {
	for i := range p.Wait {
		if err := p.Wait[i].Validate(); err != nil {
			return err
		}
	}
	for _, step := range p.Steps {
		if step.Name == "" {
			return ConfigError("setup step with empty name")
		}
		if step.Run == "" {
			return ConfigError("setup step " + step.Name + " has no run command")
		}
		if step.OnFailure != "" && step.OnFailure != PolicyAbort && step.OnFailure != PolicyContinue {
			return ConfigError("setup step " + step.Name + ": onFailure must be abort or continue")
		}
	}
	return nil
}
