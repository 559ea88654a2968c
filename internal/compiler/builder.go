// Package compiler turns a sealed hook registry into a frozen execution plan.
//
// Building is a one-shot pipeline: type compatibility, dependency existence,
// cycle detection, then a deterministic topological sort per phase. Any
// violation aborts the build; a plan is never partially produced.
package compiler

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/registry"
)

// Warning is an advisory finding that did not block the build.
type Warning struct {
	HookID  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.HookID, w.Message)
}

// Builder compiles a sealed registry into an execution plan.
type Builder struct {
	reg           *registry.Registry
	category      string
	enforceTyping bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithContractCategory sets the type tag the whole plan is validated
// against. Hooks without a tag always pass regardless of category.
func WithContractCategory(category string) Option {
	return func(b *Builder) {
		b.category = category
	}
}

// WithAdvisoryTyping downgrades type-tag mismatches from build errors to
// warnings returned alongside the plan.
func WithAdvisoryTyping() Option {
	return func(b *Builder) {
		b.enforceTyping = false
	}
}

// New creates a builder over a sealed registry. Typing is enforced unless
// WithAdvisoryTyping is supplied.
func New(reg *registry.Registry, opts ...Option) *Builder {
	b := &Builder{
		reg:           reg,
		enforceTyping: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the registry and assembles the plan. Identical registry
// content always yields an identical plan: ties between hooks with no
// dependency relation break by ascending priority, then by hook ID.
func (b *Builder) Build() (*plan.Plan, []Warning, error) {
	if !b.reg.Sealed() {
		return nil, nil, domain.ErrRegistryNotSealed
	}

	warnings, err := b.checkTypes()
	if err != nil {
		return nil, nil, err
	}

	ordered := make(map[domain.Phase][]domain.Hook, len(domain.Phases()))
	for _, phase := range domain.Phases() {
		hooks := b.reg.HooksForPhase(phase)
		if err := checkDependencies(phase, hooks); err != nil {
			return nil, nil, err
		}
		sorted, err := topoSort(phase, hooks)
		if err != nil {
			return nil, nil, err
		}
		ordered[phase] = sorted
	}

	return plan.New(ordered), warnings, nil
}

// checkTypes verifies every tagged hook against the contract category.
// Untagged hooks are wildcards and always pass; likewise an empty category
// accepts everything.
func (b *Builder) checkTypes() ([]Warning, error) {
	if b.category == "" {
		return nil, nil
	}

	var warnings []Warning
	for _, h := range b.reg.AllHooks() {
		if h.TypeTag == "" || h.TypeTag == b.category {
			continue
		}
		mismatch := &domain.TypeMismatchError{
			HookID:   h.ID,
			TypeTag:  h.TypeTag,
			Category: b.category,
		}
		if b.enforceTyping {
			return nil, mismatch
		}
		warnings = append(warnings, Warning{HookID: h.ID, Message: mismatch.Error()})
	}
	return warnings, nil
}

// checkDependencies verifies every dependency edge points at a hook
// registered in the same phase.
func checkDependencies(phase domain.Phase, hooks []domain.Hook) error {
	ids := make(map[string]struct{}, len(hooks))
	for _, h := range hooks {
		ids[h.ID] = struct{}{}
	}
	for _, h := range hooks {
		for _, dep := range h.DependsOn {
			if _, ok := ids[dep]; !ok {
				return &domain.DependencyError{Phase: phase, HookID: h.ID, DependsOn: dep}
			}
		}
	}
	return nil
}
