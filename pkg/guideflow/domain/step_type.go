package domain

// StepType classifies a step. The set is closed; anything else is rejected at
// validation time rather than silently treated as a linear step.
type StepType string

const (
	// StepTypeStep is a linear instruction step with at most one successor.
	StepTypeStep StepType = "step"
	// StepTypeDecision branches on an explicit operator choice.
	StepTypeDecision StepType = "decision"
	// StepTypeCondition branches on an authored condition expression.
	StepTypeCondition StepType = "condition"
	// StepTypeEnd terminates the flow regardless of next/options.
	StepTypeEnd StepType = "end"
)

// Known reports whether t is one of the closed set of step types.
func (t StepType) Known() bool {
	switch t {
	case StepTypeStep, StepTypeDecision, StepTypeCondition, StepTypeEnd:
		return true
	}
	return false
}

// normalizeStepType maps the aliases older documents use onto the closed set.
// Unknown values pass through untouched so validation can name them.
func normalizeStepType(t StepType) StepType {
	switch t {
	case "", "normal", "start":
		return StepTypeStep
	}
	return t
}

// ConditionTypeOther is the default option condition type when none is set.
const ConditionTypeOther = "other"
