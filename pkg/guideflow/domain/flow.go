package domain

// FlowDocument is the persisted step graph for one troubleshooting scenario.
// Field names are part of the wire contract and must not change.
type FlowDocument struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category,omitempty"`
	TriggerKeywords []string `json:"triggerKeywords"`
	Steps           []Step   `json:"steps"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`

	// Trigger is the legacy name for TriggerKeywords. Older documents carry
	// one or the other; Normalize folds it in and clears it on the way out.
	Trigger []string `json:"trigger,omitempty"`
}

// Step is one node in the graph, a single screen shown to the operator.
type Step struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Message     string   `json:"message"`
	Type        StepType `json:"type"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Options     []Option `json:"options"`
	Checklist   []string `json:"checklist,omitempty"`
	Next        string   `json:"next,omitempty"`
	Condition   string   `json:"condition,omitempty"`
}

// Option is a labeled edge from a decision/condition step to another step.
// An empty NextStepID means the destination was removed by a deletion cascade.
type Option struct {
	Text          string `json:"text"`
	NextStepID    string `json:"nextStepId"`
	IsTerminal    bool   `json:"isTerminal"`
	ConditionType string `json:"conditionType"`

	// Legacy field names still found in older documents.
	Label      string `json:"label,omitempty"`
	LegacyNext string `json:"next,omitempty"`
}

// StartStepID is the id of the mandatory entry step of every flow.
const StartStepID = "start"

// FindStep returns the step with the given id, or nil if absent.
func (d *FlowDocument) FindStep(id string) *Step {
	for i := range d.Steps {
		if d.Steps[i].ID == id {
			return &d.Steps[i]
		}
	}
	return nil
}

// IsTerminal reports whether the step ends a run: either it is flagged as an
// end step, or it has neither a successor nor options (a dead end).
func (s *Step) IsTerminal() bool {
	if s.Type == StepTypeEnd {
		return true
	}
	return s.Next == "" && len(s.Options) == 0
}

// Clone returns a deep copy. The change analyzer holds the pre-edit snapshot
// across an editing session, so copies must not share slices with the source.
func (d *FlowDocument) Clone() *FlowDocument {
	out := *d
	out.TriggerKeywords = append([]string(nil), d.TriggerKeywords...)
	out.Trigger = append([]string(nil), d.Trigger...)
	out.Steps = make([]Step, len(d.Steps))
	for i, s := range d.Steps {
		cs := s
		cs.Options = append([]Option(nil), s.Options...)
		cs.Checklist = append([]string(nil), s.Checklist...)
		out.Steps[i] = cs
	}
	return &out
}

// NewFlowDocument returns an empty document seeded with the start step.
func NewFlowDocument(id string) *FlowDocument {
	return &FlowDocument{
		ID:              id,
		TriggerKeywords: []string{},
		Steps:           []Step{NewStartStep()},
	}
}

// NewStartStep returns the canonical default start step a new flow begins with.
func NewStartStep() Step {
	return Step{ID: StartStepID, Type: StepTypeStep, Options: []Option{}}
}
