// Package redis provides a Redis-backed recorder for finished run results,
// so operators can inspect recent pipeline outcomes out of process.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Recorder implements ports.Recorder using Redis.
type Recorder struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithTTL sets the expiration for recorded results.
func WithTTL(ttl time.Duration) Option {
	return func(r *Recorder) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix for recorded results.
func WithPrefix(prefix string) Option {
	return func(r *Recorder) {
		r.prefix = prefix
	}
}

// New creates a new Redis recorder with options.
func New(address, password string, db int, opts ...Option) *Recorder {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a new Redis recorder from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Recorder {
	rec := &Recorder{
		client: client,
		prefix: "espalier:run:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

// storedResult is the wire shape of a recorded run. HookError carries a live
// error value, so errors are flattened to their messages on the way in and
// rehydrated as opaque errors on the way out.
type storedResult struct {
	Success bool           `json:"success"`
	Errors  []storedError  `json:"errors,omitempty"`
	Context map[string]any `json:"context"`
}

type storedError struct {
	Phase   domain.Phase `json:"phase"`
	HookID  string       `json:"hook_id"`
	Message string       `json:"message"`
}

func (r *Recorder) key(runID string) string {
	return r.prefix + runID
}

// Record stores the result under the run ID, honoring the configured TTL.
func (r *Recorder) Record(ctx context.Context, runID string, result *domain.Result) error {
	stored := storedResult{
		Success: result.Success,
		Context: map[string]any{},
	}
	if result.Context != nil {
		stored.Context = result.Context.Snapshot()
	}
	for _, he := range result.Errors {
		stored.Errors = append(stored.Errors, storedError{
			Phase:   he.Phase,
			HookID:  he.HookID,
			Message: he.Err.Error(),
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	if err := r.client.Set(ctx, r.key(runID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record run %s: %w", runID, err)
	}
	return nil
}

// Load retrieves the recorded result for the run ID.
func (r *Recorder) Load(ctx context.Context, runID string) (*domain.Result, error) {
	data, err := r.client.Get(ctx, r.key(runID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	var stored storedResult
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to deserialize run %s: %w", runID, err)
	}

	result := &domain.Result{
		Success: stored.Success,
		Context: domain.NewContext(),
	}
	for k, v := range stored.Context {
		result.Context.Set(k, v)
	}
	for _, se := range stored.Errors {
		result.Errors = append(result.Errors, domain.HookError{
			Phase:  se.Phase,
			HookID: se.HookID,
			Err:    errors.New(se.Message),
		})
	}
	return result, nil
}

// Delete removes the recorded result. Unknown run IDs are a no-op.
func (r *Recorder) Delete(ctx context.Context, runID string) error {
	if err := r.client.Del(ctx, r.key(runID)).Err(); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	return nil
}
