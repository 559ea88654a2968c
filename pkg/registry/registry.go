// Package registry implements the append-only hook registry.
//
// A Registry is mutable until Seal is called, after which it is permanently
// read-only and safe to share across goroutines. Reads always return clones,
// never internal references, so no caller can mutate or race on registry
// state.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Registry is an append-only collection of hook descriptors with a one-way
// sealed flag.
type Registry struct {
	mu     sync.RWMutex
	hooks  map[string]domain.Hook
	sealed bool
}

// New creates an empty, mutable registry.
func New() *Registry {
	return &Registry{
		hooks: make(map[string]domain.Hook),
	}
}

// Register adds a hook descriptor.
// It fails with domain.ErrRegistrySealed after sealing, domain.ErrUnknownPhase
// for an invalid phase, and domain.ErrDuplicateHook on an ID collision.
// Dependency existence is deliberately NOT checked here; hooks may be
// registered in any order and dependencies are validated at build time.
func (r *Registry) Register(hook domain.Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %q: %w", hook.ID, domain.ErrRegistrySealed)
	}
	if hook.ID == "" {
		return fmt.Errorf("register: hook id must not be empty")
	}
	if !hook.Phase.Valid() {
		return fmt.Errorf("register %q: %w: %q", hook.ID, domain.ErrUnknownPhase, hook.Phase)
	}
	if _, exists := r.hooks[hook.ID]; exists {
		return fmt.Errorf("register %q: %w", hook.ID, domain.ErrDuplicateHook)
	}

	r.hooks[hook.ID] = hook.Clone()
	return nil
}

// Seal transitions the registry to its immutable state. The transition is
// one-way and idempotent: sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// HookByID returns a clone of the hook with the given ID.
func (r *Registry) HookByID(id string) (domain.Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hooks[id]
	if !ok {
		return domain.Hook{}, false
	}
	return h.Clone(), true
}

// HooksForPhase returns clones of every hook bound to phase, sorted by ID
// for deterministic iteration. Execution order is decided by the plan
// builder, not here.
func (r *Registry) HooksForPhase(phase domain.Phase) []domain.Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Hook
	for _, h := range r.hooks {
		if h.Phase == phase {
			out = append(out, h.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllHooks returns clones of every registered hook, sorted by ID.
func (r *Registry) AllHooks() []domain.Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Hook, 0, len(r.hooks))
	for _, h := range r.hooks {
		out = append(out, h.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
