package plan_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_AllPhasesPresent(t *testing.T) {
	p := plan.New(map[domain.Phase][]domain.Hook{
		domain.PhaseExecute: {{ID: "a", Phase: domain.PhaseExecute}},
	})

	assert.Equal(t, domain.Phases(), p.Phases())
	for _, phase := range p.Phases() {
		pp := p.ForPhase(phase)
		assert.Equal(t, phase, pp.Phase)
		assert.Equal(t, phase.FailFast(), pp.FailFast)
	}
	assert.Equal(t, 1, p.HookCount())
}

func TestPlan_ForPhaseReturnsCopies(t *testing.T) {
	p := plan.New(map[domain.Phase][]domain.Hook{
		domain.PhaseExecute: {{ID: "a", Phase: domain.PhaseExecute, DependsOn: []string{"x"}}},
	})

	pp := p.ForPhase(domain.PhaseExecute)
	require.Len(t, pp.Hooks, 1)
	pp.Hooks[0].ID = "mutated"
	pp.Hooks[0].DependsOn[0] = "mutated"

	again := p.ForPhase(domain.PhaseExecute)
	assert.Equal(t, "a", again.Hooks[0].ID)
	assert.Equal(t, []string{"x"}, again.Hooks[0].DependsOn)
}

func TestPlan_InputSliceIsNotAliased(t *testing.T) {
	input := map[domain.Phase][]domain.Hook{
		domain.PhaseEmit: {{ID: "a", Phase: domain.PhaseEmit}},
	}
	p := plan.New(input)

	input[domain.PhaseEmit][0].ID = "mutated"
	assert.Equal(t, "a", p.ForPhase(domain.PhaseEmit).Hooks[0].ID)
}
