// Package manifest loads declarative pipeline manifests.
//
// A manifest is the registration seam for statically known hook sets: a YAML
// document listing hook descriptors plus plan-level settings (contract
// category, typing mode). Loading a manifest performs shape validation only;
// dependency and ordering validation stays with the plan builder.
package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/registry"
)

// Manifest describes one declarative hook set.
type Manifest struct {
	// Pipeline is a human-readable name, used for diagnostics only.
	Pipeline string `mapstructure:"pipeline"`

	// ContractCategory is the type tag the compiled plan is validated
	// against. Empty means no type gating.
	ContractCategory string `mapstructure:"contract_category"`

	// EnforceTyping selects fatal (true, the default) or advisory typing.
	EnforceTyping *bool `mapstructure:"enforce_typing"`

	// Hooks are the declared descriptors. Timeouts accept Go duration
	// strings ("250ms", "5s").
	Hooks []domain.Hook `mapstructure:"hooks"`
}

// TypingEnforced resolves the typing mode, defaulting to enforced.
func (m *Manifest) TypingEnforced() bool {
	return m.EnforceTyping == nil || *m.EnforceTyping
}

// Load parses a manifest from a reader.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest yaml: %w", err)
	}

	var m Manifest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      &m,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile parses a manifest from a file on disk.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// validate checks descriptor shape. Cross-hook concerns (duplicates,
// dependencies, cycles) belong to the registry and builder.
func (m *Manifest) validate() error {
	for i, h := range m.Hooks {
		if h.ID == "" {
			return fmt.Errorf("hook #%d: missing id", i)
		}
		if h.CallableRef == "" {
			return fmt.Errorf("hook %q: missing callable", h.ID)
		}
		if !h.Phase.Valid() {
			return fmt.Errorf("hook %q: %w: %q", h.ID, domain.ErrUnknownPhase, h.Phase)
		}
		if h.Timeout < 0 {
			return fmt.Errorf("hook %q: negative timeout", h.ID)
		}
	}
	return nil
}

// Apply registers every declared hook into reg, in declaration order.
func (m *Manifest) Apply(reg *registry.Registry) error {
	for _, h := range m.Hooks {
		if err := reg.Register(h); err != nil {
			return fmt.Errorf("manifest %q: %w", m.Pipeline, err)
		}
	}
	return nil
}
