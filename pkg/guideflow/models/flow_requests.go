package models

import "github.com/guideflow/guideflow/pkg/guideflow/domain"

// CreateFlowRequest creates a new flow document. All fields are optional;
// a missing id is generated and missing steps are seeded with the start step.
type CreateFlowRequest struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	TriggerKeywords []string      `json:"triggerKeywords"`
	Steps           []domain.Step `json:"steps"`
}

// SearchFlowsRequest matches flows whose title, description or trigger
// keywords contain the query substring (case-insensitive).
type SearchFlowsRequest struct {
	Query string `json:"query"`
}

// SaveFlowResponse is returned by the update endpoint: the stored document
// after the full replacement plus the change summary against the previous
// version.
type SaveFlowResponse struct {
	Flow    *domain.FlowDocument `json:"flow"`
	Changes ChangeSummary        `json:"changes"`
}

// AnalyzeFlowsRequest compares two documents without touching storage.
type AnalyzeFlowsRequest struct {
	Original *domain.FlowDocument `json:"original"`
	Edited   *domain.FlowDocument `json:"edited"`
}

// ErrorResponse is the JSON error body for all non-2xx API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
