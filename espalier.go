package espalier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/espalier/internal/compiler"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
)

// Version is the library version, surfaced by the CLI.
const Version = "0.1.0"

// Warning is an advisory finding produced while building the plan.
type Warning = compiler.Warning

// Pipeline is the high-level entry point for the Espalier library.
// It wraps the registry, the plan builder and the runner behind one object
// that walks the register -> seal -> build -> run lifecycle.
//
// Registration and building are not safe for concurrent use; once Build has
// succeeded, Run may be called from any number of goroutines, each call
// getting its own single-use runner and fresh context.
type Pipeline struct {
	Name string

	reg      *registry.Registry
	resolver ports.CallableResolver
	recorder ports.Recorder
	logger   *slog.Logger
	hooks    domain.LifecycleHooks

	category      string
	advisoryTyped bool

	mu       sync.Mutex
	plan     *plan.Plan
	warnings []Warning
	runSeq   int
}

// Option defines a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithResolver supplies the mapping from callable refs to hook bodies.
// Required before Run.
func WithResolver(resolver ports.CallableResolver) Option {
	return func(p *Pipeline) {
		p.resolver = resolver
	}
}

// WithRecorder attaches an optional sink for finished run results.
func WithRecorder(rec ports.Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = rec
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks passed to every runner.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.hooks = hooks
	}
}

// WithContractCategory sets the type tag the plan is validated against.
func WithContractCategory(category string) Option {
	return func(p *Pipeline) {
		p.category = category
	}
}

// WithAdvisoryTyping downgrades type mismatches to warnings.
func WithAdvisoryTyping() Option {
	return func(p *Pipeline) {
		p.advisoryTyped = true
	}
}

// New creates an empty pipeline.
func New(name string, opts ...Option) *Pipeline {
	p := &Pipeline{
		Name:   name,
		reg:    registry.New(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register adds a hook descriptor. Fails once the pipeline is sealed.
func (p *Pipeline) Register(hook domain.Hook) error {
	return p.reg.Register(hook)
}

// Registry exposes the underlying registry, mainly for manifest.Apply and
// for hosts that want read access to the registered set.
func (p *Pipeline) Registry() *registry.Registry {
	return p.reg
}

// Seal freezes registration. Idempotent; Build seals implicitly.
func (p *Pipeline) Seal() {
	p.reg.Seal()
}

// Build seals the registry and compiles the execution plan. It is
// idempotent: once a plan exists, further calls are no-ops.
func (p *Pipeline) Build() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.plan != nil {
		return nil
	}

	p.reg.Seal()

	opts := []compiler.Option{}
	if p.category != "" {
		opts = append(opts, compiler.WithContractCategory(p.category))
	}
	if p.advisoryTyped {
		opts = append(opts, compiler.WithAdvisoryTyping())
	}

	built, warnings, err := compiler.New(p.reg, opts...).Build()
	if err != nil {
		return fmt.Errorf("pipeline %q: %w", p.Name, err)
	}

	for _, w := range warnings {
		p.logger.Warn("plan warning", "pipeline", p.Name, "hook_id", w.HookID, "msg", w.Message)
	}

	p.plan = built
	p.warnings = warnings
	return nil
}

// Warnings returns the advisory findings of the last Build.
func (p *Pipeline) Warnings() []Warning {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Warning(nil), p.warnings...)
}

// Plan returns the compiled plan, or nil before a successful Build.
func (p *Pipeline) Plan() *plan.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan
}

// Run executes the pipeline once, building it first if needed. Every call
// creates a fresh context and a fresh single-use runner, so concurrent runs
// never share mutable state.
func (p *Pipeline) Run(ctx context.Context, opts ...RunOption) (*domain.Result, error) {
	if err := p.Build(); err != nil {
		return nil, err
	}
	if p.resolver == nil {
		return nil, fmt.Errorf("pipeline %q: no callable resolver configured", p.Name)
	}

	cfg := runConfig{runID: p.nextRunID()}
	for _, opt := range opts {
		opt(&cfg)
	}

	rOpts := []runtime.Option{
		runtime.WithLogger(p.logger),
		runtime.WithLifecycleHooks(p.hooks),
	}
	if p.recorder != nil {
		rOpts = append(rOpts, runtime.WithRecorder(p.recorder, cfg.runID))
	}
	if cfg.seed != nil {
		rOpts = append(rOpts, runtime.WithInitialValues(cfg.seed))
	}

	return runtime.New(p.Plan(), p.resolver, rOpts...).Run(ctx)
}

func (p *Pipeline) nextRunID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runSeq++
	return fmt.Sprintf("%s/%d", p.Name, p.runSeq)
}

type runConfig struct {
	runID string
	seed  map[string]any
}

// RunOption configures one execution.
type RunOption func(*runConfig)

// WithRunID overrides the generated run ID used by the recorder.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithInitialValues seeds the per-run context before the first hook runs.
func WithInitialValues(values map[string]any) RunOption {
	return func(c *runConfig) {
		c.seed = values
	}
}
