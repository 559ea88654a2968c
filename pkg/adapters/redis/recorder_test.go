package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T, opts ...redis.Option) (*redis.Recorder, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisRecorder_Contract(t *testing.T) {
	rec, _ := newTestRecorder(t)
	ports.RunRecorderContract(t, rec)
}

func TestRedisRecorder_TTLExpiration(t *testing.T) {
	rec, mr := newTestRecorder(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, "ephemeral", &domain.Result{Success: true, Context: domain.NewContext()}))

	_, err := rec.Load(ctx, "ephemeral")
	require.NoError(t, err)

	// miniredis lets us fast-forward past the TTL.
	mr.FastForward(2 * time.Minute)

	_, err = rec.Load(ctx, "ephemeral")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRedisRecorder_KeyPrefix(t *testing.T) {
	rec, mr := newTestRecorder(t, redis.WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, "run-1", &domain.Result{Success: true, Context: domain.NewContext()}))
	assert.True(t, mr.Exists("custom:run-1"))
}

func TestRedisRecorder_ErrorRoundTrip(t *testing.T) {
	rec, _ := newTestRecorder(t)
	ctx := context.Background()

	result := &domain.Result{
		Success: false,
		Errors: []domain.HookError{
			{Phase: domain.PhaseEmit, HookID: "webhook", Err: domain.ErrHookTimeout},
		},
		Context: domain.NewContext(),
	}
	require.NoError(t, rec.Record(ctx, "run-err", result))

	loaded, err := rec.Load(ctx, "run-err")
	require.NoError(t, err)
	require.Len(t, loaded.Errors, 1)
	assert.Equal(t, "webhook", loaded.Errors[0].HookID)
	assert.Equal(t, domain.PhaseEmit, loaded.Errors[0].Phase)
	// Error identity does not survive serialization, only the message does.
	assert.Contains(t, loaded.Errors[0].Err.Error(), domain.ErrHookTimeout.Error())
}
