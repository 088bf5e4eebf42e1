package onboarding

import "encoding/json"

type SubmitStepRequest struct {
	Step StepName        `json:"step"`
	Data json.RawMessage `json:"data"`
}

// View is the wizard state returned to the client.
type View struct {
	Role      string                       `json:"role"`
	Steps     []StepName                   `json:"steps"`
	NextStep  StepName                     `json:"nextStep,omitempty"`
	Completed bool                         `json:"completed"`
	Data      map[StepName]json.RawMessage `json:"data"`
}
