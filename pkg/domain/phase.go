package domain

// Phase identifies one of the six fixed lifecycle stages a hook can bind to.
type Phase string

const (
	PhasePreflight Phase = "preflight"
	PhaseBefore    Phase = "before"
	PhaseExecute   Phase = "execute"
	PhaseAfter     Phase = "after"
	PhaseEmit      Phase = "emit"
	PhaseFinalize  Phase = "finalize"
)

// phaseOrder is the canonical total order of execution.
var phaseOrder = []Phase{
	PhasePreflight,
	PhaseBefore,
	PhaseExecute,
	PhaseAfter,
	PhaseEmit,
	PhaseFinalize,
}

// phasePolicy maps each phase to its failure policy.
// true = fail-fast (first error aborts the run), false = continue-on-error.
// The policy is static; it is never inferred from hook content.
var phasePolicy = map[Phase]bool{
	PhasePreflight: true,
	PhaseBefore:    true,
	PhaseExecute:   true,
	PhaseAfter:     false,
	PhaseEmit:      false,
	PhaseFinalize:  false,
}

// Phases returns the canonical phase order. The returned slice is a copy.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}

// Valid reports whether p is one of the six known phases.
func (p Phase) Valid() bool {
	_, ok := phasePolicy[p]
	return ok
}

// FailFast reports whether a hook error in this phase aborts the run.
// Unknown phases report false; callers should validate first.
func (p Phase) FailFast() bool {
	return phasePolicy[p]
}

func (p Phase) String() string {
	return string(p)
}
