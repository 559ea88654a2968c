// Package plan defines the frozen execution plan produced by the compiler.
//
// A Plan is immutable after construction and safe to share, read-only,
// across unlimited concurrent runners.
package plan

import "github.com/aretw0/espalier/pkg/domain"

// PhasePlan is the compiled schedule for one phase: hooks in execution
// order plus the phase's static failure policy.
type PhasePlan struct {
	Phase    domain.Phase
	Hooks    []domain.Hook
	FailFast bool
}

// Plan maps every phase to its compiled schedule. Phases with no hooks are
// present with an empty hook list so the runner's phase loop stays uniform.
type Plan struct {
	phases map[domain.Phase]PhasePlan
}

// New assembles a plan from per-phase ordered hook lists. The builder is the
// only intended caller; hook slices are cloned so the plan owns its data.
func New(ordered map[domain.Phase][]domain.Hook) *Plan {
	p := &Plan{phases: make(map[domain.Phase]PhasePlan, len(ordered))}
	for _, phase := range domain.Phases() {
		p.phases[phase] = PhasePlan{
			Phase:    phase,
			Hooks:    domain.CloneHooks(ordered[phase]),
			FailFast: phase.FailFast(),
		}
	}
	return p
}

// Phases returns the canonical phase order the runner must follow.
func (p *Plan) Phases() []domain.Phase {
	return domain.Phases()
}

// ForPhase returns the compiled schedule for one phase. The hook list is a
// copy; callers can do what they like with it.
func (p *Plan) ForPhase(phase domain.Phase) PhasePlan {
	pp := p.phases[phase]
	return PhasePlan{
		Phase:    pp.Phase,
		Hooks:    domain.CloneHooks(pp.Hooks),
		FailFast: pp.FailFast,
	}
}

// HookCount returns the total number of scheduled hooks across all phases.
func (p *Plan) HookCount() int {
	n := 0
	for _, pp := range p.phases {
		n += len(pp.Hooks)
	}
	return n
}
