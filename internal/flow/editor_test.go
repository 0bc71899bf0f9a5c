package flow

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

func fixtureDoc() *domain.FlowDocument {
	return &domain.FlowDocument{
		ID:              "f1",
		Title:           "No internet",
		TriggerKeywords: []string{"internet", "offline"},
		Steps: []domain.Step{
			{ID: domain.StartStepID, Type: domain.StepTypeStep, Message: "Check the router", Next: "s2"},
			{ID: "s2", Type: domain.StepTypeDecision, Message: "Lights on?", Options: []domain.Option{
				{Text: "Yes", NextStepID: "s3", ConditionType: "yes"},
				{Text: "No", NextStepID: "s4", ConditionType: "no"},
			}},
			{ID: "s3", Type: domain.StepTypeStep, Message: "Reboot", Checklist: []string{"unplug", "wait 30s", "plug back"}, Next: "s4"},
			{ID: "s4", Type: domain.StepTypeEnd, Message: "Call support"},
		},
	}
}

func TestAddStepGeneratesFreshID(t *testing.T) {
	e := NewEditor(&SequenceGenerator{})
	doc := fixtureDoc()
	out := e.AddStep(doc)

	require.Len(t, out.Steps, 5)
	assert.Equal(t, "step_1", out.Steps[4].ID)
	assert.Equal(t, domain.StepTypeStep, out.Steps[4].Type)
	assert.Len(t, doc.Steps, 4, "input must not be mutated")

	out2 := e.AddStep(out)
	assert.Equal(t, "step_2", out2.Steps[5].ID)
}

func TestRemoveStepCascadesReferences(t *testing.T) {
	e := NewEditor(nil)
	doc := fixtureDoc()
	out, err := e.RemoveStep(doc, "s4")
	require.NoError(t, err)

	require.Nil(t, out.FindStep("s4"))
	assert.Empty(t, out.FindStep("s3").Next, "dangling next must be cleared")
	opts := out.FindStep("s2").Options
	assert.Equal(t, "s3", opts[0].NextStepID)
	assert.Empty(t, opts[1].NextStepID, "dangling option destination must be cleared")
	assert.NoError(t, out.Validate())

	assert.Equal(t, "s4", doc.FindStep("s3").Next, "input must not be mutated")
}

func TestRemoveStepGuards(t *testing.T) {
	e := NewEditor(nil)
	doc := fixtureDoc()

	_, err := e.RemoveStep(doc, domain.StartStepID)
	assert.ErrorIs(t, err, domain.ErrGuardedDeletion)

	_, err = e.RemoveStep(doc, "nope")
	assert.ErrorIs(t, err, domain.ErrStepNotFound)

	single := domain.NewFlowDocument("f2")
	single.Steps[0].ID = "only"
	_, err = e.RemoveStep(single, "only")
	assert.ErrorIs(t, err, domain.ErrGuardedDeletion)
}

func TestUpdateStepPatchesOnlyGivenFields(t *testing.T) {
	e := NewEditor(nil)
	doc := fixtureDoc()

	msg := "Power-cycle the router"
	out, err := e.UpdateStep(doc, "s3", StepPatch{Message: &msg})
	require.NoError(t, err)

	s := out.FindStep("s3")
	assert.Equal(t, msg, s.Message)
	assert.Equal(t, msg, s.Description, "message and description stay in sync")
	assert.Equal(t, "s4", s.Next, "unpatched fields keep their value")

	_, err = e.UpdateStep(doc, "ghost", StepPatch{Message: &msg})
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
}

func TestOptionAndChecklistEdits(t *testing.T) {
	e := NewEditor(nil)
	doc := fixtureDoc()

	out, err := e.AddOption(doc, "s2", domain.Option{Text: "Maybe", NextStepID: "s3"})
	require.NoError(t, err)
	opts := out.FindStep("s2").Options
	require.Len(t, opts, 3)
	assert.Equal(t, domain.ConditionTypeOther, opts[2].ConditionType)

	out, err = e.RemoveOption(out, "s2", 0)
	require.NoError(t, err)
	assert.Equal(t, "No", out.FindStep("s2").Options[0].Text)

	// out of range indexes are a no-op
	out, err = e.RemoveOption(out, "s2", 99)
	require.NoError(t, err)
	assert.Len(t, out.FindStep("s2").Options, 2)

	out, err = e.AddChecklistItem(out, "s3", "check cables")
	require.NoError(t, err)
	assert.Len(t, out.FindStep("s3").Checklist, 4)

	out, err = e.RemoveChecklistItem(out, "s3", -1)
	require.NoError(t, err)
	assert.Len(t, out.FindStep("s3").Checklist, 4)
}

func TestTriggerKeywordEdits(t *testing.T) {
	e := NewEditor(nil)
	doc := fixtureDoc()

	out := e.AddTriggerKeyword(doc, "wifi")
	assert.Equal(t, []string{"internet", "offline", "wifi"}, out.TriggerKeywords)

	out = e.RemoveTriggerKeyword(out, 0)
	assert.Equal(t, []string{"offline", "wifi"}, out.TriggerKeywords)

	out = e.RemoveTriggerKeyword(out, 5)
	assert.Equal(t, []string{"offline", "wifi"}, out.TriggerKeywords)
}

// TestRandomEditSequencesKeepDocumentValid drives the editor with random
// operation sequences and checks that a document that starts valid stays
// valid after every successful operation.
func TestRandomEditSequencesKeepDocumentValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for run := 0; run < 50; run++ {
		e := NewEditor(&SequenceGenerator{})
		doc := fixtureDoc()
		require.NoError(t, doc.Validate())

		for op := 0; op < 40; op++ {
			next := doc
			var err error
			switch rng.Intn(7) {
			case 0:
				next = e.AddStep(doc)
			case 1:
				next, err = e.RemoveStep(doc, randomStepID(rng, doc))
			case 2:
				title := "edited"
				next, err = e.UpdateStep(doc, randomStepID(rng, doc), StepPatch{Title: &title})
			case 3:
				next, err = e.AddOption(doc, randomStepID(rng, doc), domain.Option{
					Text:       "opt",
					NextStepID: randomStepID(rng, doc),
				})
			case 4:
				next, err = e.RemoveOption(doc, randomStepID(rng, doc), rng.Intn(4))
			case 5:
				next, err = e.AddChecklistItem(doc, randomStepID(rng, doc), "item")
			case 6:
				next, err = e.RemoveChecklistItem(doc, randomStepID(rng, doc), rng.Intn(4))
			}
			if err != nil {
				if !errors.Is(err, domain.ErrGuardedDeletion) && !errors.Is(err, domain.ErrStepNotFound) {
					t.Fatalf("run %d op %d: unexpected error %v", run, op, err)
				}
				continue
			}
			if verr := next.Validate(); verr != nil {
				t.Fatalf("run %d op %d: document became invalid: %v", run, op, verr)
			}
			doc = next
		}
	}
}

func randomStepID(rng *rand.Rand, doc *domain.FlowDocument) string {
	// occasionally aim at a step that does not exist
	if rng.Intn(10) == 0 {
		return "ghost"
	}
	return doc.Steps[rng.Intn(len(doc.Steps))].ID
}
