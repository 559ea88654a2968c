package domain

import (
	"context"
	"time"
)

// PhaseEvent marks entry into or exit from one phase of a run.
type PhaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Phase     Phase     `json:"phase"`
	HookCount int       `json:"hook_count"`
	// Aborted is set on exit events when a fail-fast error cut the phase short.
	Aborted bool `json:"aborted,omitempty"`
}

// HookEvent marks the start or completion of one hook invocation.
type HookEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Phase     Phase         `json:"phase"`
	HookID    string        `json:"hook_id"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines optional callbacks for runner observability.
// Nil callbacks are skipped. Callbacks run synchronously on the runner's
// goroutine and should return quickly.
type LifecycleHooks struct {
	OnPhaseStart func(context.Context, *PhaseEvent)
	OnPhaseEnd   func(context.Context, *PhaseEvent)
	OnHookStart  func(context.Context, *HookEvent)
	OnHookEnd    func(context.Context, *HookEvent)
}
