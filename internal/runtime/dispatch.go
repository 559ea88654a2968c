package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
)

// invoker is the normalized form every hook body is adapted into: a
// synchronous call that returns when the body has fully completed.
type invoker func(ctx context.Context, pc *domain.Context) error

// adapt maps the supported body shapes onto the invoker contract. Direct
// bodies pass through; suspending bodies are wrapped so the runner waits for
// their completion signal before advancing. This keeps hooks within a phase
// strictly sequential regardless of which style the author chose.
func adapt(body any) (invoker, error) {
	switch b := body.(type) {
	case domain.CallableFunc:
		return invoker(b), nil
	case func(ctx context.Context, pc *domain.Context) error:
		return invoker(b), nil
	case domain.Callable:
		return b.Invoke, nil
	case domain.AsyncCallable:
		return func(ctx context.Context, pc *domain.Context) error {
			select {
			case err := <-b.Start(ctx, pc):
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		}, nil
	default:
		return nil, fmt.Errorf("unsupported callable type %T", body)
	}
}

// invokeWithTimeout runs call, bounding it by timeout when one is set.
//
// With no timeout the body runs on the caller's goroutine. With a timeout it
// runs on a spawned goroutine so the budget can be enforced even against a
// body that ignores its context; on overrun the body is left to wind down on
// its own and its eventual result is discarded.
func invokeWithTimeout(ctx context.Context, call invoker, pc *domain.Context, timeout time.Duration) error {
	if timeout <= 0 {
		return safeInvoke(ctx, call, pc)
	}

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- safeInvoke(tctx, call, pc)
	}()

	overrun := func() error {
		return fmt.Errorf("exceeded %s: %w", timeout, domain.ErrHookTimeout)
	}

	select {
	case err := <-done:
		// A cooperative body may surface the deadline itself; normalize it
		// so callers see one timeout error either way.
		if errors.Is(err, context.DeadlineExceeded) && errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return overrun()
		}
		return err
	case <-tctx.Done():
		if errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return overrun()
		}
		return tctx.Err()
	}
}

// safeInvoke converts a panicking hook body into an ordinary hook error so
// one bad hook cannot take down the embedding process.
func safeInvoke(ctx context.Context, call invoker, pc *domain.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("hook panicked: %v", rec)
		}
	}()
	return call(ctx, pc)
}
