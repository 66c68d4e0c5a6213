package model

// StepStatus is the terminal outcome of a single setup step.
type StepStatus string

const (
	StatusSucceeded StepStatus = "succeeded"
	StatusFailed    StepStatus = "failed"
	StatusSkipped   StepStatus = "skipped" // never started because an earlier step aborted the plan
)

// StepResult records the outcome of one setup step in a plan run.
type StepResult struct {
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	Tolerated bool       `json:"tolerated,omitempty"` // failed, but the step's policy let the plan continue
	Err       error      `json:"-"`
}

// ConfigError reports missing or invalid configuration. It is always raised
// before any network attempt or step execution.
type ConfigError string

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return string(e) }
