package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// Recorder is an optional sink for finished pipeline results, keyed by a
// caller-chosen run ID. It exists for inspection and diagnostics; the engine
// itself never reads a recorded result back.
type Recorder interface {
	// Record stores the result for a run ID, replacing any previous entry.
	Record(ctx context.Context, runID string, result *domain.Result) error

	// Load retrieves a recorded result.
	// Returns domain.ErrRunNotFound if the run ID is unknown.
	Load(ctx context.Context, runID string) (*domain.Result, error)

	// Delete removes a recorded result. Deleting an unknown run ID is a no-op.
	Delete(ctx context.Context, runID string) error
}
