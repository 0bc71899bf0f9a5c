package flow

import (
	"reflect"

	"github.com/guideflow/guideflow/pkg/guideflow/domain"
	"github.com/guideflow/guideflow/pkg/guideflow/models"
)

// Analyze compares the originally loaded document with the edited one and
// produces the coarse summary shown on the save confirmation. The comparison
// order is fixed for reproducibility: document header, trigger keywords, step
// count, id-based step adds/deletes, then per-field comparison of the steps
// present in both. Keyword diffs are length-based only, and a replaced step
// counts in both the count delta and the id diff. That over-reporting is
// intentional: the prompt should err toward showing too many changes, never
// too few.
func Analyze(original, edited *domain.FlowDocument) models.ChangeSummary {
	var sum models.ChangeSummary
	if original == nil || edited == nil {
		return sum
	}

	if original.Title != edited.Title {
		sum.Modified++
	}
	if original.Description != edited.Description {
		sum.Modified++
	}

	ot, et := original.TriggerKeywords, edited.TriggerKeywords
	if !reflect.DeepEqual(ot, et) {
		switch {
		case len(ot) < len(et):
			sum.Added += len(et) - len(ot)
		case len(ot) > len(et):
			sum.Deleted += len(ot) - len(et)
		default:
			sum.Modified++
		}
	}

	if len(original.Steps) > len(edited.Steps) {
		sum.Deleted += len(original.Steps) - len(edited.Steps)
	} else if len(original.Steps) < len(edited.Steps) {
		sum.Added += len(edited.Steps) - len(original.Steps)
	}

	origByID := make(map[string]*domain.Step, len(original.Steps))
	for i := range original.Steps {
		origByID[original.Steps[i].ID] = &original.Steps[i]
	}
	editByID := make(map[string]*domain.Step, len(edited.Steps))
	for i := range edited.Steps {
		editByID[edited.Steps[i].ID] = &edited.Steps[i]
	}

	for i := range edited.Steps {
		if _, ok := origByID[edited.Steps[i].ID]; !ok {
			sum.Added++
		}
	}
	for i := range original.Steps {
		if _, ok := editByID[original.Steps[i].ID]; !ok {
			sum.Deleted++
		}
	}

	// Common steps: each differing field group counts on its own, so one step
	// can contribute several modifications.
	for i := range original.Steps {
		os := &original.Steps[i]
		es, ok := editByID[os.ID]
		if !ok {
			continue
		}
		if os.Message != es.Message {
			sum.Modified++
		}
		if os.Next != es.Next {
			sum.Modified++
		}
		if !reflect.DeepEqual(os.Checklist, es.Checklist) {
			sum.Modified++
		}
		if !reflect.DeepEqual(os.Options, es.Options) {
			sum.Modified++
		}
	}
	return sum
}
