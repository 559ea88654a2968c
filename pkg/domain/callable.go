package domain

import "context"

// CallableFunc is the direct (blocking) form of a hook body. It runs to
// completion on the runner's goroutine and reports its outcome as an error.
type CallableFunc func(ctx context.Context, pc *Context) error

// Callable is the interface form of a direct hook body, for implementations
// that carry state alongside Invoke.
type Callable interface {
	Invoke(ctx context.Context, pc *Context) error
}

// AsyncCallable is the suspending form of a hook body. Start kicks off the
// work and returns a channel that yields exactly one completion error (nil
// on success) before closing. The runner waits on that channel, so sibling
// hooks still execute strictly sequentially.
//
// Cancelling in-flight work on ctx expiry is the body's own responsibility.
type AsyncCallable interface {
	Start(ctx context.Context, pc *Context) <-chan error
}

// AsyncCallableFunc adapts a plain function to AsyncCallable.
type AsyncCallableFunc func(ctx context.Context, pc *Context) <-chan error

// Start implements AsyncCallable.
func (f AsyncCallableFunc) Start(ctx context.Context, pc *Context) <-chan error {
	return f(ctx, pc)
}
