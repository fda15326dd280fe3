package collide

// Context is the step-scoped state shared by detection, resolution and the
// speculative pass. The registry is reset at the start of every pass; the
// speculative queue survives Reset and is drained by ProcessSpeculative.
type Context struct {
	registry *Registry
	queue    []Handle
}

// NewContext creates a context with an empty registry and queue.
func NewContext() *Context {
	return &Context{registry: NewRegistry()}
}

// Reset starts a new detection pass. It is idempotent.
func (c *Context) Reset() {
	c.registry.Reset()
}

// Registry returns the pair registry of the current pass.
func (c *Context) Registry() *Registry {
	return c.registry
}

// Enqueue schedules a body for the next speculative pass.
func (c *Context) Enqueue(h Handle) {
	c.queue = append(c.queue, h)
}

// Pending returns the number of queued speculative rechecks.
func (c *Context) Pending() int {
	return len(c.queue)
}

// DropPending discards queued rechecks. Loops that skip the speculative pass
// call it once per step so the queue does not grow.
func (c *Context) DropPending() {
	c.queue = c.queue[:0]
}
