package domain

// Normalize folds the legacy spellings a persisted document may carry into
// the canonical shape. message and description are synonyms at the ingestion
// boundary: a document lacking one is backfilled from the other. Older
// documents use trigger instead of triggerKeywords and label/next instead of
// text/nextStepId on options. An empty step list is seeded with the start
// step so a freshly created flow is immediately editable.
func (d *FlowDocument) Normalize() {
	if len(d.TriggerKeywords) == 0 && len(d.Trigger) > 0 {
		d.TriggerKeywords = d.Trigger
	}
	if d.TriggerKeywords == nil {
		d.TriggerKeywords = []string{}
	}
	d.Trigger = nil

	if len(d.Steps) == 0 {
		d.Steps = []Step{NewStartStep()}
	}
	for i := range d.Steps {
		s := &d.Steps[i]
		if s.Description == "" {
			s.Description = s.Message
		}
		if s.Message == "" {
			s.Message = s.Description
		}
		s.Type = normalizeStepType(s.Type)
		if s.Options == nil {
			s.Options = []Option{}
		}
		for j := range s.Options {
			o := &s.Options[j]
			if o.Text == "" {
				o.Text = o.Label
			}
			if o.NextStepID == "" {
				o.NextStepID = o.LegacyNext
			}
			if o.ConditionType == "" {
				o.ConditionType = ConditionTypeOther
			}
			o.Label = ""
			o.LegacyNext = ""
		}
	}
}
