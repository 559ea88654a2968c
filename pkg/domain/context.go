package domain

// Context is the single mutable data carrier shared by every hook within one
// pipeline execution. It is the only channel hooks use to pass data forward.
//
// A Context belongs to exactly one run. Sequential hook execution makes it
// effectively single-writer, so it carries no locking; it must never be
// shared across concurrent runs.
type Context struct {
	values map[string]any
}

// NewContext creates an empty per-run context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Set stores a value under key, replacing any previous value.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Get returns the value stored under key and whether it exists.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Delete removes key if present.
func (c *Context) Delete(key string) {
	delete(c.values, key)
}

// Len returns the number of stored keys.
func (c *Context) Len() int {
	return len(c.values)
}

// Keys returns the stored keys in unspecified order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a shallow copy of the stored values, so consumers of a
// finished run cannot mutate the context through the result.
func (c *Context) Snapshot() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
