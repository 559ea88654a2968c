package memory

import (
	"context"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Recorder implements ports.Recorder in memory.
// Safe for concurrent use.
type Recorder struct {
	mu   sync.RWMutex
	runs map[string]*domain.Result
}

// NewRecorder creates a new in-memory recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		runs: make(map[string]*domain.Result),
	}
}

// Record stores a copy of the result so the caller cannot mutate the
// recorded entry afterwards.
func (r *Recorder) Record(ctx context.Context, runID string, result *domain.Result) error {
	stored := &domain.Result{
		Success: result.Success,
		Errors:  append([]domain.HookError(nil), result.Errors...),
		Context: domain.NewContext(),
	}
	if result.Context != nil {
		for k, v := range result.Context.Snapshot() {
			stored.Context.Set(k, v)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[runID] = stored
	return nil
}

// Load retrieves a copy of the recorded result.
func (r *Recorder) Load(ctx context.Context, runID string) (*domain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	out := &domain.Result{
		Success: stored.Success,
		Errors:  append([]domain.HookError(nil), stored.Errors...),
		Context: domain.NewContext(),
	}
	for k, v := range stored.Context.Snapshot() {
		out.Context.Set(k, v)
	}
	return out, nil
}

// Delete removes a recorded result. Unknown run IDs are a no-op.
func (r *Recorder) Delete(ctx context.Context, runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.runs, runID)
	return nil
}
