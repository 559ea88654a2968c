package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecorderContract runs a suite of tests to verify that a Recorder
// implementation adheres to the defined interface contract.
func RunRecorderContract(t *testing.T, rec Recorder) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Record and Load", func(t *testing.T) {
		pc := domain.NewContext()
		pc.Set("foo", "bar")
		result := &domain.Result{
			Success: false,
			Errors: []domain.HookError{
				{Phase: domain.PhaseAfter, HookID: "notify", Err: domain.ErrHookTimeout},
			},
			Context: pc,
		}

		err := rec.Record(ctx, runID, result)
		require.NoError(t, err, "Record should not return error")

		loaded, err := rec.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.False(t, loaded.Success)
		require.Len(t, loaded.Errors, 1)
		assert.Equal(t, "notify", loaded.Errors[0].HookID)
		assert.Equal(t, domain.PhaseAfter, loaded.Errors[0].Phase)

		require.NotNil(t, loaded.Context)
		v, ok := loaded.Context.Get("foo")
		require.True(t, ok)
		assert.Equal(t, "bar", v)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := rec.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Record Overwrites", func(t *testing.T) {
		first := &domain.Result{Success: false, Context: domain.NewContext()}
		second := &domain.Result{Success: true, Context: domain.NewContext()}

		require.NoError(t, rec.Record(ctx, runID, first))
		require.NoError(t, rec.Record(ctx, runID, second))

		loaded, err := rec.Load(ctx, runID)
		require.NoError(t, err)
		assert.True(t, loaded.Success)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, rec.Record(ctx, runID, &domain.Result{Success: true, Context: domain.NewContext()}))

		err := rec.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = rec.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		// Deleting again must be a no-op.
		assert.NoError(t, rec.Delete(ctx, runID))
	})
}
