package domain

// Result aggregates the outcome of one pipeline execution.
type Result struct {
	// Success is true iff no error was captured and no fail-fast abort occurred.
	Success bool

	// Errors lists every failure captured under continue-on-error policy,
	// plus the aborting error of a fail-fast phase, in occurrence order.
	Errors []HookError

	// Context is the final per-run context, meaningful even on degraded runs.
	Context *Context
}

// ErrorsForPhase filters the captured errors down to one phase.
func (r *Result) ErrorsForPhase(phase Phase) []HookError {
	var out []HookError
	for _, e := range r.Errors {
		if e.Phase == phase {
			out = append(out, e)
		}
	}
	return out
}
