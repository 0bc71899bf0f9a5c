package domain

import "fmt"

// Validate checks the invariants every well-formed document holds:
// exactly one start step, unique step ids, every next/nextStepId either empty
// or pointing at an existing step, at least one step, a known type on every
// step, and non-blank id and title. Editors may hold transient invalid states
// while typing; this is the hard precondition before a save is committed.
func (d *FlowDocument) Validate() error {
	if d.ID == "" {
		return &ValidationError{Field: "id", Message: "must not be blank"}
	}
	if d.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be blank"}
	}
	if len(d.Steps) == 0 {
		return &ValidationError{Field: "steps", Message: "must contain at least one step"}
	}

	ids := make(map[string]bool, len(d.Steps))
	starts := 0
	for i, s := range d.Steps {
		if s.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("steps[%d].id", i), Message: "must not be blank"}
		}
		if ids[s.ID] {
			return &ValidationError{Field: fmt.Sprintf("steps[%d].id", i), Message: fmt.Sprintf("duplicate step id %q", s.ID)}
		}
		ids[s.ID] = true
		if s.ID == StartStepID {
			starts++
		}
		if !s.Type.Known() {
			return &ValidationError{Field: fmt.Sprintf("steps[%d].type", i), Message: fmt.Sprintf("unknown step type %q", s.Type)}
		}
	}
	if starts == 0 {
		return &ValidationError{Field: "steps", Message: "missing start step"}
	}

	for i, s := range d.Steps {
		if s.Next != "" && !ids[s.Next] {
			return &ValidationError{Field: fmt.Sprintf("steps[%d].next", i), Message: fmt.Sprintf("references unknown step %q", s.Next)}
		}
		for j, o := range s.Options {
			if o.NextStepID != "" && !ids[o.NextStepID] {
				return &ValidationError{Field: fmt.Sprintf("steps[%d].options[%d].nextStepId", i, j), Message: fmt.Sprintf("references unknown step %q", o.NextStepID)}
			}
		}
	}
	return nil
}
