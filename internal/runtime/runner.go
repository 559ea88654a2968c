// Package runtime implements the pipeline runner.
//
// A Runner walks a compiled plan phase by phase, invoking hooks strictly
// sequentially against one shared per-run context. The plan it consumes is
// immutable and may feed any number of concurrent runners; the Runner itself
// is single-use and must never be shared.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/ports"
)

// Runner executes one pipeline run against a compiled plan.
type Runner struct {
	plan     *plan.Plan
	resolver ports.CallableResolver
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	recorder ports.Recorder
	runID    string
	seed     map[string]any
	ran      atomic.Bool
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithRecorder configures an optional result sink. The result is recorded
// under runID after the run completes, on both success and failure.
func WithRecorder(rec ports.Recorder, runID string) Option {
	return func(r *Runner) {
		r.recorder = rec
		r.runID = runID
	}
}

// WithInitialValues seeds the per-run context before the first hook runs.
func WithInitialValues(values map[string]any) Option {
	return func(r *Runner) {
		r.seed = values
	}
}

// New creates a single-use runner over a compiled plan.
func New(p *plan.Plan, resolver ports.CallableResolver, opts ...Option) *Runner {
	r := &Runner{
		plan:     p,
		resolver: resolver,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the plan once. It returns the aggregated result and, for a
// fail-fast abort, the aborting error. A degraded run (captured errors in a
// continue-on-error phase) returns Success=false with a nil error.
//
// Run may be called exactly once; further calls return ErrRunnerExhausted.
func (r *Runner) Run(ctx context.Context) (*domain.Result, error) {
	if !r.ran.CompareAndSwap(false, true) {
		return nil, domain.ErrRunnerExhausted
	}

	pc := domain.NewContext()
	for k, v := range r.seed {
		pc.Set(k, v)
	}
	result := &domain.Result{Success: true, Context: pc}

	// All phases except finalize; a fail-fast error stops this walk.
	var abort *domain.HookError
	for _, phase := range r.plan.Phases() {
		if phase == domain.PhaseFinalize {
			continue
		}
		if abort = r.runPhase(ctx, r.plan.ForPhase(phase), pc, result); abort != nil {
			break
		}
	}

	if abort != nil {
		result.Errors = append(result.Errors, *abort)
	}

	// Finalize runs exactly once per execution, no matter what happened
	// above. Its policy is continue-on-error, so runPhase cannot abort here
	// and finalize failures can never mask the original error.
	r.runPhase(ctx, r.plan.ForPhase(domain.PhaseFinalize), pc, result)

	result.Success = len(result.Errors) == 0

	r.record(ctx, result)

	if abort != nil {
		return result, abort
	}
	return result, nil
}

// runPhase executes one phase in plan order. Under fail-fast policy it
// returns the first hook error; under continue policy it captures every
// error into the result and always returns nil.
func (r *Runner) runPhase(ctx context.Context, pp plan.PhasePlan, pc *domain.Context, result *domain.Result) *domain.HookError {
	start := &domain.PhaseEvent{Timestamp: time.Now(), Phase: pp.Phase, HookCount: len(pp.Hooks)}
	r.emitPhase(ctx, r.hooks.OnPhaseStart, start)

	for _, h := range pp.Hooks {
		began := time.Now()
		r.emitHook(ctx, r.hooks.OnHookStart, &domain.HookEvent{
			Timestamp: began,
			Phase:     pp.Phase,
			HookID:    h.ID,
		})

		err := r.invoke(ctx, h, pc)

		r.emitHook(ctx, r.hooks.OnHookEnd, &domain.HookEvent{
			Timestamp: time.Now(),
			Phase:     pp.Phase,
			HookID:    h.ID,
			Duration:  time.Since(began),
			Err:       err,
		})

		if err == nil {
			continue
		}

		hookErr := &domain.HookError{Phase: pp.Phase, HookID: h.ID, Err: err}
		if pp.FailFast {
			r.logger.Error("hook failed, aborting run",
				"phase", pp.Phase, "hook_id", h.ID, "err", err)
			r.emitPhase(ctx, r.hooks.OnPhaseEnd, &domain.PhaseEvent{
				Timestamp: time.Now(), Phase: pp.Phase, HookCount: len(pp.Hooks), Aborted: true,
			})
			return hookErr
		}

		r.logger.Warn("hook failed, continuing phase",
			"phase", pp.Phase, "hook_id", h.ID, "err", err)
		result.Errors = append(result.Errors, *hookErr)
	}

	r.emitPhase(ctx, r.hooks.OnPhaseEnd, &domain.PhaseEvent{
		Timestamp: time.Now(), Phase: pp.Phase, HookCount: len(pp.Hooks),
	})
	return nil
}

// invoke resolves and dispatches one hook body, honoring its timeout.
func (r *Runner) invoke(ctx context.Context, h domain.Hook, pc *domain.Context) error {
	body, ok := r.resolver.Resolve(h.CallableRef)
	if !ok {
		return fmt.Errorf("ref %q: %w", h.CallableRef, domain.ErrCallableNotFound)
	}

	call, err := adapt(body)
	if err != nil {
		return err
	}

	return invokeWithTimeout(ctx, call, pc, h.Timeout)
}

func (r *Runner) record(ctx context.Context, result *domain.Result) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Record(ctx, r.runID, result); err != nil {
		// Recording is diagnostics, never part of run semantics.
		r.logger.Warn("failed to record run result", "run_id", r.runID, "err", err)
	}
}

func (r *Runner) emitPhase(ctx context.Context, fn func(context.Context, *domain.PhaseEvent), ev *domain.PhaseEvent) {
	if fn != nil {
		fn(ctx, ev)
	}
}

func (r *Runner) emitHook(ctx context.Context, fn func(context.Context, *domain.HookEvent), ev *domain.HookEvent) {
	if fn != nil {
		fn(ctx, ev)
	}
}
