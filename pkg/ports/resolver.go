package ports

// CallableResolver maps a hook's callable ref to an invokable body.
//
// The returned value must be one of the supported body shapes: a
// domain.CallableFunc (or bare func with that signature), a domain.Callable,
// or a domain.AsyncCallable. The engine never inspects a body beyond that
// capability check; type compatibility is an advisory concern handled at
// build time through type tags.
type CallableResolver interface {
	// Resolve returns the body registered under ref, or false if unmapped.
	Resolve(ref string) (any, bool)
}

// ResolverFunc adapts a plain function to CallableResolver.
type ResolverFunc func(ref string) (any, bool)

// Resolve implements CallableResolver.
func (f ResolverFunc) Resolve(ref string) (any, bool) {
	return f(ref)
}
