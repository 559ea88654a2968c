// Package memory provides in-memory adapters: a callable resolver for
// registering hook bodies by name, and a recorder for finished run results.
package memory

import (
	"sync"
)

// Resolver implements ports.CallableResolver over a mutex-guarded map.
// Safe for concurrent use; registration and resolution may interleave.
type Resolver struct {
	mu     sync.RWMutex
	bodies map[string]any
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		bodies: make(map[string]any),
	}
}

// Register maps ref to a hook body.
// If a body with the same ref exists, it is overwritten.
func (r *Resolver) Register(ref string, body any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies[ref] = body
}

// Resolve returns the body registered under ref.
func (r *Resolver) Resolve(ref string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	body, ok := r.bodies[ref]
	return body, ok
}

// Refs returns the registered refs in unspecified order.
func (r *Resolver) Refs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]string, 0, len(r.bodies))
	for ref := range r.bodies {
		refs = append(refs, ref)
	}
	return refs
}
