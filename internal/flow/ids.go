package flow

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces unique step and flow ids. The editor takes it as a
// dependency so tests can generate deterministic ids.
type IDGenerator interface {
	NewStepID() string
	NewFlowID() string
}

// UUIDGenerator is the production generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewStepID() string { return "step_" + uuid.NewString() }
func (UUIDGenerator) NewFlowID() string { return "flow_" + uuid.NewString() }

// SequenceGenerator hands out step_1, step_2, ... for reproducible tests.
type SequenceGenerator struct {
	n atomic.Int64
}

func (g *SequenceGenerator) NewStepID() string {
	return fmt.Sprintf("step_%d", g.n.Add(1))
}

func (g *SequenceGenerator) NewFlowID() string {
	return fmt.Sprintf("flow_%d", g.n.Add(1))
}
