// Package flow holds the structural edit operations over a flow document and
// the change analysis run before a save is committed. Every operation is a
// functional update: the input document is never mutated, so an editing
// session can keep the originally loaded snapshot for comparison and undo.
package flow

import (
	"fmt"

	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

// Editor applies structural edits to flow documents.
type Editor struct {
	ids IDGenerator
}

func NewEditor(ids IDGenerator) *Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Editor{ids: ids}
}

// AddStep appends a new empty linear step with a freshly generated id.
func (e *Editor) AddStep(doc *domain.FlowDocument) *domain.FlowDocument {
	out := doc.Clone()
	out.Steps = append(out.Steps, domain.Step{
		ID:      e.ids.NewStepID(),
		Type:    domain.StepTypeStep,
		Options: []domain.Option{},
	})
	return out
}

// RemoveStep removes the identified step and clears every next pointer and
// option destination that referenced it, so no dangling references survive.
// The start step and the last remaining step are not deletable.
func (e *Editor) RemoveStep(doc *domain.FlowDocument, stepID string) (*domain.FlowDocument, error) {
	if stepID == domain.StartStepID {
		return nil, fmt.Errorf("%w: start step", domain.ErrGuardedDeletion)
	}
	if len(doc.Steps) <= 1 {
		return nil, fmt.Errorf("%w: at least one step is required", domain.ErrGuardedDeletion)
	}
	if doc.FindStep(stepID) == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStepNotFound, stepID)
	}

	out := doc.Clone()
	kept := out.Steps[:0]
	for _, s := range out.Steps {
		if s.ID != stepID {
			kept = append(kept, s)
		}
	}
	out.Steps = kept
	for i := range out.Steps {
		s := &out.Steps[i]
		if s.Next == stepID {
			s.Next = ""
		}
		for j := range s.Options {
			if s.Options[j].NextStepID == stepID {
				s.Options[j].NextStepID = ""
			}
		}
	}
	return out, nil
}

// StepPatch carries the editable step fields. Nil pointers leave the field
// untouched so callers can patch a single field at a time.
type StepPatch struct {
	Title     *string
	Message   *string
	Type      *domain.StepType
	Condition *string
	ImageURL  *string
	Next      *string
}

// UpdateStep merges the patch into the identified step. Unknown step ids are
// an error, not a silent no-op, so stale editor state surfaces upstream.
func (e *Editor) UpdateStep(doc *domain.FlowDocument, stepID string, patch StepPatch) (*domain.FlowDocument, error) {
	out := doc.Clone()
	s := out.FindStep(stepID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStepNotFound, stepID)
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Message != nil {
		// message and description are synonyms throughout the system
		s.Message = *patch.Message
		s.Description = *patch.Message
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.Condition != nil {
		s.Condition = *patch.Condition
	}
	if patch.ImageURL != nil {
		s.ImageURL = *patch.ImageURL
	}
	if patch.Next != nil {
		s.Next = *patch.Next
	}
	return out, nil
}

// AddOption appends a labeled edge to the identified step.
func (e *Editor) AddOption(doc *domain.FlowDocument, stepID string, opt domain.Option) (*domain.FlowDocument, error) {
	out := doc.Clone()
	s := out.FindStep(stepID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStepNotFound, stepID)
	}
	if opt.ConditionType == "" {
		opt.ConditionType = domain.ConditionTypeOther
	}
	s.Options = append(s.Options, opt)
	return out, nil
}

// RemoveOption removes the option at index; out-of-range indexes are a no-op.
func (e *Editor) RemoveOption(doc *domain.FlowDocument, stepID string, index int) (*domain.FlowDocument, error) {
	out := doc.Clone()
	s := out.FindStep(stepID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStepNotFound, stepID)
	}
	if index >= 0 && index < len(s.Options) {
		s.Options = append(s.Options[:index], s.Options[index+1:]...)
	}
	return out, nil
}

// AddChecklistItem appends a confirmation item to the identified step.
func (e *Editor) AddChecklistItem(doc *domain.FlowDocument, stepID string, text string) (*domain.FlowDocument, error) {
	out := doc.Clone()
	s := out.FindStep(stepID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStepNotFound, stepID)
	}
	s.Checklist = append(s.Checklist, text)
	return out, nil
}

// RemoveChecklistItem removes the item at index; out-of-range is a no-op.
func (e *Editor) RemoveChecklistItem(doc *domain.FlowDocument, stepID string, index int) (*domain.FlowDocument, error) {
	out := doc.Clone()
	s := out.FindStep(stepID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStepNotFound, stepID)
	}
	if index >= 0 && index < len(s.Checklist) {
		s.Checklist = append(s.Checklist[:index], s.Checklist[index+1:]...)
	}
	return out, nil
}

// AddTriggerKeyword appends a keyword; duplicates are permitted.
func (e *Editor) AddTriggerKeyword(doc *domain.FlowDocument, text string) *domain.FlowDocument {
	out := doc.Clone()
	out.TriggerKeywords = append(out.TriggerKeywords, text)
	return out
}

// RemoveTriggerKeyword removes the keyword at index; out-of-range is a no-op.
func (e *Editor) RemoveTriggerKeyword(doc *domain.FlowDocument, index int) *domain.FlowDocument {
	out := doc.Clone()
	if index >= 0 && index < len(out.TriggerKeywords) {
		out.TriggerKeywords = append(out.TriggerKeywords[:index], out.TriggerKeywords[index+1:]...)
	}
	return out
}
