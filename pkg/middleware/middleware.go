// Package middleware composes cross-cutting behaviors around an arbitrary
// unit of work, independently of the hook-phase system.
//
// Middlewares nest like an onion: the first one registered is outermost, so
// a chain of [a, b] around core runs a-enter, b-enter, core, b-exit, a-exit.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Next continues to the inner layer of the chain.
type Next func(ctx context.Context) error

// Middleware wraps a unit of work. Implementations decide whether, when and
// how often to call next; not calling it short-circuits the chain.
type Middleware func(ctx context.Context, next Next) error

// Chain is an ordered set of middlewares.
type Chain struct {
	layers []Middleware
}

// NewChain creates a chain from the given middlewares, outermost first.
func NewChain(layers ...Middleware) *Chain {
	return &Chain{layers: append([]Middleware(nil), layers...)}
}

// Use appends a middleware as the new innermost layer.
func (c *Chain) Use(m Middleware) *Chain {
	c.layers = append(c.layers, m)
	return c
}

// Len returns the number of layers.
func (c *Chain) Len() int {
	return len(c.layers)
}

// Then wraps core in the chain and returns the composed unit of work.
// Composition happens inside-out so registration order maps to nesting
// order: first registered, outermost.
func (c *Chain) Then(core Next) Next {
	if core == nil {
		core = func(ctx context.Context) error { return nil }
	}
	wrapped := core
	for i := len(c.layers) - 1; i >= 0; i-- {
		m := c.layers[i]
		inner := wrapped
		wrapped = func(ctx context.Context) error {
			return m(ctx, inner)
		}
	}
	return wrapped
}

// Timing logs the duration of the wrapped work at Debug level.
func Timing(logger *slog.Logger, name string) Middleware {
	return func(ctx context.Context, next Next) error {
		start := time.Now()
		err := next(ctx)
		logger.DebugContext(ctx, "timed unit of work",
			"name", name, "duration", time.Since(start), "err", err)
		return err
	}
}

// Recover converts a panic in any inner layer into an ordinary error.
func Recover() Middleware {
	return func(ctx context.Context, next Next) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("recovered panic: %v", rec)
			}
		}()
		return next(ctx)
	}
}
