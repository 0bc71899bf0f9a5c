// Package engine walks a flow document at preview or run time. A session is a
// value: every operation returns a new state and leaves its input untouched,
// so a failed transition can never leave the run half-advanced.
package engine

import "github.com/guideflow/guideflow/pkg/guideflow/domain"

// MaxHistory bounds the visited-step stack. The graph permits cycles, so a
// runaway loop fails with ErrHistoryLimit instead of growing forever.
const MaxHistory = 1000

// ChecklistKey identifies a checklist item at runtime. Items are plain
// strings owned positionally by their step, so the index is part of the key.
type ChecklistKey struct {
	StepID string
	Index  int
}

// Session is the runtime state of one preview/run traversal. It never
// outlives the document it was started against and is not persisted.
type Session struct {
	CurrentStepID string
	History       []string
	Checked       map[ChecklistKey]bool
}

// Start opens a session positioned at initialStepID, conventionally "start".
func Start(initialStepID string) Session {
	return Session{
		CurrentStepID: initialStepID,
		History:       []string{initialStepID},
		Checked:       map[ChecklistKey]bool{},
	}
}

// Reset discards all progress and returns to the initial step.
func Reset(initialStepID string) Session {
	return Start(initialStepID)
}

func (s Session) clone() Session {
	out := s
	out.History = append([]string(nil), s.History...)
	out.Checked = make(map[ChecklistKey]bool, len(s.Checked))
	for k, v := range s.Checked {
		out.Checked[k] = v
	}
	return out
}

// ToggleChecklistItem flips the item at index on the current step.
func (s Session) ToggleChecklistItem(index int) Session {
	out := s.clone()
	key := ChecklistKey{StepID: s.CurrentStepID, Index: index}
	if out.Checked[key] {
		delete(out.Checked, key)
	} else {
		out.Checked[key] = true
	}
	return out
}

// AdvanceAllowed reports whether the current step's checklist is complete.
// Steps without a checklist never gate.
func AdvanceAllowed(doc *domain.FlowDocument, s Session) bool {
	step := doc.FindStep(s.CurrentStepID)
	if step == nil {
		return false
	}
	for i := range step.Checklist {
		if !s.Checked[ChecklistKey{StepID: step.ID, Index: i}] {
			return false
		}
	}
	return true
}

// Advance follows the current step's next pointer. It fails while the
// checklist gates, and is a no-op on a terminal step: the caller should not
// be offering "next" past the end of a flow.
func Advance(doc *domain.FlowDocument, s Session) (Session, error) {
	if !AdvanceAllowed(doc, s) {
		return s, ErrChecklistIncomplete
	}
	step := doc.FindStep(s.CurrentStepID)
	if step == nil || step.Next == "" {
		return s, nil
	}
	return push(s, step.Next)
}

// SelectOption follows a labeled edge. Options are an explicit operator
// decision, so the checklist does not gate them. An empty or unknown
// destination fails with ErrBrokenTransition rather than stranding the run
// on a step that does not exist.
func SelectOption(doc *domain.FlowDocument, s Session, nextStepID string) (Session, error) {
	if nextStepID == "" || doc.FindStep(nextStepID) == nil {
		return s, ErrBrokenTransition
	}
	return push(s, nextStepID)
}

// Back pops the history stack; at the first entry it is a no-op.
func (s Session) Back() Session {
	if len(s.History) <= 1 {
		return s
	}
	out := s.clone()
	out.History = out.History[:len(out.History)-1]
	out.CurrentStepID = out.History[len(out.History)-1]
	return out
}

func push(s Session, stepID string) (Session, error) {
	if len(s.History) >= MaxHistory {
		return s, ErrHistoryLimit
	}
	out := s.clone()
	out.History = append(out.History, stepID)
	out.CurrentStepID = stepID
	return out, nil
}
