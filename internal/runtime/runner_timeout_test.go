package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sleepyCallable(d time.Duration) domain.CallableFunc {
	return func(ctx context.Context, pc *domain.Context) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func TestRunner_TimeoutInFailFastPhaseAborts(t *testing.T) {
	p := buildPlan(t,
		domain.Hook{ID: "slow", Phase: domain.PhaseExecute, CallableRef: "slow", Timeout: 20 * time.Millisecond, Priority: 1},
		domain.Hook{ID: "never", Phase: domain.PhaseExecute, CallableRef: "never", Priority: 2},
		domain.Hook{ID: "fin", Phase: domain.PhaseFinalize, CallableRef: "fin"},
	)
	resolver := mapResolver{
		"slow":  sleepyCallable(2 * time.Second),
		"never": appendCallable("never"),
		"fin":   appendCallable("fin"),
	}

	start := time.Now()
	result, err := runtime.New(p, resolver).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHookTimeout)
	assert.Less(t, time.Since(start), time.Second, "timeout must cut the invocation short")

	// The rest of execute never ran; finalize still did.
	assert.Equal(t, []string{"fin"}, trace(t, result))
}

func TestRunner_TimeoutInContinuePhaseIsCaptured(t *testing.T) {
	p := buildPlan(t,
		domain.Hook{ID: "slow", Phase: domain.PhaseEmit, CallableRef: "slow", Timeout: 20 * time.Millisecond, Priority: 1},
		domain.Hook{ID: "next", Phase: domain.PhaseEmit, CallableRef: "next", Priority: 2},
	)
	resolver := mapResolver{
		"slow": sleepyCallable(2 * time.Second),
		"next": appendCallable("next"),
	}

	result, err := runtime.New(p, resolver).Run(context.Background())
	require.NoError(t, err, "emit is continue-on-error")
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, &result.Errors[0], domain.ErrHookTimeout)
	assert.Equal(t, []string{"next"}, trace(t, result))
}

func TestRunner_FastHookBeatsItsTimeout(t *testing.T) {
	p := buildPlan(t,
		domain.Hook{ID: "quick", Phase: domain.PhaseExecute, CallableRef: "quick", Timeout: time.Second},
	)
	resolver := mapResolver{"quick": appendCallable("quick")}

	result, err := runtime.New(p, resolver).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"quick"}, trace(t, result))
}

func TestRunner_SuspendingBodyHonorsTimeout(t *testing.T) {
	p := buildPlan(t,
		domain.Hook{ID: "slow", Phase: domain.PhaseAfter, CallableRef: "slow", Timeout: 20 * time.Millisecond},
	)
	resolver := mapResolver{
		"slow": domain.AsyncCallableFunc(func(ctx context.Context, pc *domain.Context) <-chan error {
			done := make(chan error, 1)
			go func() {
				time.Sleep(2 * time.Second)
				done <- nil
			}()
			return done
		}),
	}

	result, err := runtime.New(p, resolver).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, &result.Errors[0], domain.ErrHookTimeout)
}

func TestRunner_ParentContextCancellation(t *testing.T) {
	p := buildPlan(t,
		domain.Hook{ID: "slow", Phase: domain.PhaseExecute, CallableRef: "slow"},
	)
	resolver := mapResolver{"slow": sleepyCallable(2 * time.Second)}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := runtime.New(p, resolver).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrHookTimeout)
}
