package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Registration errors.
var (
	// ErrRegistrySealed is returned when registering against a sealed registry.
	ErrRegistrySealed = errors.New("registry is sealed")

	// ErrDuplicateHook is returned when a hook ID is registered twice.
	ErrDuplicateHook = errors.New("duplicate hook id")

	// ErrUnknownPhase is returned when a hook names a phase that does not exist.
	ErrUnknownPhase = errors.New("unknown phase")
)

// Build errors.
var (
	// ErrRegistryNotSealed is returned when building a plan from a mutable registry.
	ErrRegistryNotSealed = errors.New("registry is not sealed")

	// ErrTypeMismatch is returned in enforced mode when a hook's type tag
	// disagrees with the contract category.
	ErrTypeMismatch = errors.New("type tag mismatch")

	// ErrUnknownDependency is returned when a hook depends on an ID absent
	// from its own phase.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrDependencyCycle is returned when a phase's dependency graph is cyclic.
	ErrDependencyCycle = errors.New("dependency cycle")
)

// Run errors.
var (
	// ErrCallableNotFound is returned when a hook's callable ref has no mapping.
	ErrCallableNotFound = errors.New("callable not found")

	// ErrHookTimeout is returned when a hook exceeds its invocation budget.
	ErrHookTimeout = errors.New("hook timeout")

	// ErrRunnerExhausted is returned when Run is called twice on one runner.
	ErrRunnerExhausted = errors.New("runner already executed")

	// ErrRunNotFound is returned by recorders when a run ID is unknown.
	ErrRunNotFound = errors.New("run not found")
)

// TypeMismatchError reports an enforced type-tag violation.
type TypeMismatchError struct {
	HookID   string
	TypeTag  string
	Category string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("hook %q: type tag %q does not match contract category %q", e.HookID, e.TypeTag, e.Category)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// DependencyError reports a dependency on a hook ID that is not registered
// in the same phase. It names both ends of the broken edge.
type DependencyError struct {
	Phase     Phase
	HookID    string
	DependsOn string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("hook %q depends on %q, which is not registered in phase %q", e.HookID, e.DependsOn, e.Phase)
}

func (e *DependencyError) Unwrap() error { return ErrUnknownDependency }

// CycleError reports a circular dependency within one phase.
type CycleError struct {
	Phase Phase
	// Hooks are the IDs participating in the cycle, in deterministic order.
	Hooks []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle in phase %q involving: %s", e.Phase, strings.Join(e.Hooks, ", "))
}

func (e *CycleError) Unwrap() error { return ErrDependencyCycle }

// HookError records one failure captured during a run: which hook, in which
// phase, and the underlying cause.
type HookError struct {
	Phase  Phase
	HookID string
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %q (phase %s): %v", e.HookID, e.Phase, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
