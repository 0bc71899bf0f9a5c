package models

import "github.com/guideflow/guideflow/pkg/guideflow/domain"

// StartSessionRequest opens a preview/run session. Either FlowID (to run a
// stored flow) or Document (to preview an unsaved draft) must be set; when
// both are present the inline document wins, matching live editor preview.
type StartSessionRequest struct {
	FlowID      string               `json:"flowId"`
	Document    *domain.FlowDocument `json:"document"`
	StartStepID string               `json:"startStepId"`
}

// ToggleChecklistRequest flips one checklist item on the current step.
type ToggleChecklistRequest struct {
	Index int `json:"index"`
}

// SelectOptionRequest follows a labeled edge from the current step.
type SelectOptionRequest struct {
	NextStepID string `json:"nextStepId"`
}

// SessionResponse is the session view returned after every session operation.
type SessionResponse struct {
	SessionID      string       `json:"sessionId"`
	CurrentStepID  string       `json:"currentStepId"`
	CurrentStep    *domain.Step `json:"currentStep,omitempty"`
	History        []string     `json:"history"`
	Checked        []int        `json:"checked"`
	AdvanceAllowed bool         `json:"advanceAllowed"`
	Terminal       bool         `json:"terminal"`
}
