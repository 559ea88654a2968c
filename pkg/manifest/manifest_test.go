package manifest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/manifest"
	"github.com/aretw0/espalier/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
pipeline: order-processing
contract_category: http
enforce_typing: false
hooks:
  - id: validate-payload
    phase: preflight
    callable: validators.payload
    priority: 1
    type_tag: http
    timeout: 250ms
  - id: load-customer
    phase: before
    callable: loaders.customer
  - id: charge
    phase: execute
    callable: billing.charge
    timeout: 5s
  - id: receipt
    phase: emit
    callable: notify.receipt
    depends_on: []
  - id: audit
    phase: emit
    callable: audit.log
    depends_on: [receipt]
  - id: release-lock
    phase: finalize
    callable: locks.release
`

func TestLoad_FullManifest(t *testing.T) {
	m, err := manifest.Load(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "order-processing", m.Pipeline)
	assert.Equal(t, "http", m.ContractCategory)
	assert.False(t, m.TypingEnforced())
	require.Len(t, m.Hooks, 6)

	first := m.Hooks[0]
	assert.Equal(t, "validate-payload", first.ID)
	assert.Equal(t, domain.PhasePreflight, first.Phase)
	assert.Equal(t, "validators.payload", first.CallableRef)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, "http", first.TypeTag)
	assert.Equal(t, 250*time.Millisecond, first.Timeout)

	audit := m.Hooks[4]
	assert.Equal(t, []string{"receipt"}, audit.DependsOn)
}

func TestLoad_TypingDefaultsToEnforced(t *testing.T) {
	m, err := manifest.Load(strings.NewReader(`
hooks:
  - id: a
    phase: execute
    callable: noop
`))
	require.NoError(t, err)
	assert.True(t, m.TypingEnforced())
}

func TestLoad_RejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing id",
			yaml: "hooks:\n  - phase: execute\n    callable: noop\n",
			want: "missing id",
		},
		{
			name: "missing callable",
			yaml: "hooks:\n  - id: a\n    phase: execute\n",
			want: "missing callable",
		},
		{
			name: "unknown phase",
			yaml: "hooks:\n  - id: a\n    phase: warmup\n    callable: noop\n",
			want: "unknown phase",
		},
		{
			name: "unknown field",
			yaml: "hooks:\n  - id: a\n    phase: execute\n    callable: noop\n    retries: 3\n",
			want: "invalid keys",
		},
		{
			name: "bad duration",
			yaml: "hooks:\n  - id: a\n    phase: execute\n    callable: noop\n    timeout: soon\n",
			want: "timeout",
		},
		{
			name: "not yaml",
			yaml: "{{{",
			want: "yaml",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.Load(strings.NewReader(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestApply_RegistersAllHooks(t *testing.T) {
	m, err := manifest.Load(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, m.Apply(reg))
	assert.Equal(t, 6, reg.Len())

	h, ok := reg.HookByID("charge")
	require.True(t, ok)
	assert.Equal(t, domain.PhaseExecute, h.Phase)
	assert.Equal(t, 5*time.Second, h.Timeout)
}

func TestApply_SurfacesRegistryErrors(t *testing.T) {
	m, err := manifest.Load(strings.NewReader(`
pipeline: dupes
hooks:
  - id: a
    phase: execute
    callable: noop
  - id: a
    phase: after
    callable: noop
`))
	require.NoError(t, err)

	reg := registry.New()
	err = m.Apply(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateHook)
	assert.Contains(t, err.Error(), "dupes")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := manifest.LoadFile("/does/not/exist.yaml")
	assert.Error(t, err)
}
