package domain

import "time"

// Hook is the immutable description of one unit of work bound to a lifecycle
// phase. It carries scheduling metadata only; the actual body is resolved at
// run time through the CallableRef (see ports.CallableResolver).
type Hook struct {
	// ID uniquely identifies the hook across the whole registry.
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// Phase binds the hook to one of the six lifecycle stages.
	Phase Phase `json:"phase" yaml:"phase" mapstructure:"phase"`

	// CallableRef is an opaque key resolved externally to an invokable body.
	// The engine never inspects the body beyond the advisory TypeTag.
	CallableRef string `json:"callable" yaml:"callable" mapstructure:"callable"`

	// Priority orders hooks with no dependency relation; lower runs earlier.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty" mapstructure:"priority"`

	// DependsOn lists hook IDs that must run before this one.
	// Dependencies are constrained to the same phase and validated at build
	// time, so hooks may be registered in any order.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty" mapstructure:"depends_on"`

	// TypeTag optionally classifies the hook. An empty tag is a wildcard:
	// it is compatible with any contract category.
	TypeTag string `json:"type_tag,omitempty" yaml:"type_tag,omitempty" mapstructure:"type_tag"`

	// Timeout bounds a single invocation. Zero means no bound.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// Clone returns a deep copy so callers can never alias internal slices.
func (h Hook) Clone() Hook {
	out := h
	if h.DependsOn != nil {
		out.DependsOn = make([]string, len(h.DependsOn))
		copy(out.DependsOn, h.DependsOn)
	}
	return out
}

// CloneHooks deep-copies a slice of hooks.
func CloneHooks(hooks []Hook) []Hook {
	out := make([]Hook, len(hooks))
	for i, h := range hooks {
		out[i] = h.Clone()
	}
	return out
}
