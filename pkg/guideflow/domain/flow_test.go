package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSeedsStartStepWhenEmpty(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "Router down"}
	doc.Normalize()

	require.Len(t, doc.Steps, 1)
	assert.Equal(t, StartStepID, doc.Steps[0].ID)
	assert.Equal(t, StepTypeStep, doc.Steps[0].Type)
}

func TestNormalizeFoldsLegacyTrigger(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "t", Trigger: []string{"no internet", "wifi"}}
	doc.Normalize()

	assert.Equal(t, []string{"no internet", "wifi"}, doc.TriggerKeywords)
	assert.Nil(t, doc.Trigger)
}

func TestNormalizeKeepsTriggerKeywordsOverLegacy(t *testing.T) {
	doc := &FlowDocument{
		ID:              "f1",
		Title:           "t",
		TriggerKeywords: []string{"modern"},
		Trigger:         []string{"legacy"},
	}
	doc.Normalize()

	assert.Equal(t, []string{"modern"}, doc.TriggerKeywords)
}

func TestNormalizeBackfillsMessageAndDescription(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "t", Steps: []Step{
		{ID: StartStepID, Message: "only message"},
		{ID: "s2", Description: "only description"},
	}}
	doc.Normalize()

	assert.Equal(t, "only message", doc.Steps[0].Description)
	assert.Equal(t, "only description", doc.Steps[1].Message)
}

func TestNormalizeFoldsLegacyOptionFields(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "t", Steps: []Step{
		{ID: StartStepID, Type: StepTypeDecision, Options: []Option{
			{Label: "Yes", LegacyNext: "s2"},
		}},
		{ID: "s2"},
	}}
	doc.Normalize()

	opt := doc.Steps[0].Options[0]
	assert.Equal(t, "Yes", opt.Text)
	assert.Equal(t, "s2", opt.NextStepID)
	assert.Equal(t, ConditionTypeOther, opt.ConditionType)
	assert.Empty(t, opt.Label)
	assert.Empty(t, opt.LegacyNext)
}

func TestNormalizeStepTypeAliases(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "t", Steps: []Step{
		{ID: StartStepID, Type: "start"},
		{ID: "s2", Type: "normal"},
		{ID: "s3", Type: ""},
		{ID: "s4", Type: StepTypeEnd},
	}}
	doc.Normalize()

	assert.Equal(t, StepTypeStep, doc.Steps[0].Type)
	assert.Equal(t, StepTypeStep, doc.Steps[1].Type)
	assert.Equal(t, StepTypeStep, doc.Steps[2].Type)
	assert.Equal(t, StepTypeEnd, doc.Steps[3].Type)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "t", Trigger: []string{"a"}, Steps: []Step{
		{ID: StartStepID, Message: "m", Options: []Option{{Label: "x", LegacyNext: StartStepID}}},
	}}
	doc.Normalize()
	once := doc.Clone()
	doc.Normalize()

	assert.Equal(t, once, doc)
}

func TestValidate(t *testing.T) {
	valid := func() *FlowDocument {
		return &FlowDocument{ID: "f1", Title: "t", Steps: []Step{
			{ID: StartStepID, Type: StepTypeStep, Next: "s2"},
			{ID: "s2", Type: StepTypeEnd},
		}}
	}

	t.Run("valid document passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("blank id", func(t *testing.T) {
		doc := valid()
		doc.ID = ""
		assertValidationField(t, doc.Validate(), "id")
	})

	t.Run("blank title", func(t *testing.T) {
		doc := valid()
		doc.Title = ""
		assertValidationField(t, doc.Validate(), "title")
	})

	t.Run("no steps", func(t *testing.T) {
		doc := valid()
		doc.Steps = nil
		assertValidationField(t, doc.Validate(), "steps")
	})

	t.Run("missing start step", func(t *testing.T) {
		doc := valid()
		doc.Steps[0].ID = "s1"
		assertValidationField(t, doc.Validate(), "steps")
	})

	t.Run("duplicate step id", func(t *testing.T) {
		doc := valid()
		doc.Steps[1].ID = StartStepID
		assertValidationField(t, doc.Validate(), "steps[1].id")
	})

	t.Run("unknown step type", func(t *testing.T) {
		doc := valid()
		doc.Steps[1].Type = "loop"
		assertValidationField(t, doc.Validate(), "steps[1].type")
	})

	t.Run("dangling next", func(t *testing.T) {
		doc := valid()
		doc.Steps[0].Next = "missing"
		assertValidationField(t, doc.Validate(), "steps[0].next")
	})

	t.Run("dangling option destination", func(t *testing.T) {
		doc := valid()
		doc.Steps[0].Options = []Option{{Text: "go", NextStepID: "missing"}}
		assertValidationField(t, doc.Validate(), "steps[0].options[0].nextStepId")
	})

	t.Run("empty option destination allowed", func(t *testing.T) {
		doc := valid()
		doc.Steps[0].Options = []Option{{Text: "cleared", NextStepID: ""}}
		assert.NoError(t, doc.Validate())
	})
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestCloneIsDeep(t *testing.T) {
	doc := &FlowDocument{ID: "f1", Title: "t", TriggerKeywords: []string{"a"}, Steps: []Step{
		{ID: StartStepID, Options: []Option{{Text: "x"}}, Checklist: []string{"c1"}},
	}}
	cp := doc.Clone()

	cp.TriggerKeywords[0] = "changed"
	cp.Steps[0].Options[0].Text = "changed"
	cp.Steps[0].Checklist[0] = "changed"

	assert.Equal(t, "a", doc.TriggerKeywords[0])
	assert.Equal(t, "x", doc.Steps[0].Options[0].Text)
	assert.Equal(t, "c1", doc.Steps[0].Checklist[0])
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, (&Step{ID: "s", Type: StepTypeEnd, Next: "other"}).IsTerminal())
	assert.True(t, (&Step{ID: "s", Type: StepTypeStep}).IsTerminal())
	assert.False(t, (&Step{ID: "s", Type: StepTypeStep, Next: "other"}).IsTerminal())
	assert.False(t, (&Step{ID: "s", Type: StepTypeDecision, Options: []Option{{Text: "x"}}}).IsTerminal())
}

func TestWireFieldNames(t *testing.T) {
	doc := NewFlowDocument("f1")
	doc.Title = "t"
	doc.Steps[0].Next = ""
	doc.Steps[0].Options = []Option{{Text: "go", NextStepID: "start"}}

	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(payload)
	assert.Contains(t, s, `"triggerKeywords"`)
	assert.Contains(t, s, `"nextStepId"`)
	assert.NotContains(t, s, `"trigger"`)
	assert.NotContains(t, s, `"label"`)
}
