package pac

import "github.com/petermattis/goid"

// Context is a plain FIFO of pending runnables plus the identity of the
// goroutine that owns and drains it. It is an inert data store with no
// synchronization of its own; its owning Toe is solely responsible for
// guarding access to it.
type Context struct {
	queue          []runnableEntry
	ownerGoroutine int64
	ownerSet       bool
}

// NewContext returns an empty Context with no owning goroutine set.
func NewContext() *Context {
	return &Context{}
}

// push appends entry to the tail of the queue.
func (c *Context) push(entry runnableEntry) {
	c.queue = append(c.queue, entry)
}

// popFront removes and returns the head of the queue.
func (c *Context) popFront() (runnableEntry, bool) {
	if len(c.queue) == 0 {
		return nil, false
	}
	entry := c.queue[0]
	c.queue = c.queue[1:]
	return entry, true
}

// count returns the number of pending runnables.
func (c *Context) count() int {
	return len(c.queue)
}

// clear discards every pending runnable.
func (c *Context) clear() {
	c.queue = nil
}

// setOwnerGoroutine records the goroutine now claiming this context,
// captured via goid.Get() since Go exposes no public goroutine-id API.
func (c *Context) setOwnerGoroutine(id int64) {
	c.ownerGoroutine = id
	c.ownerSet = true
}

// isOwnerGoroutine reports whether the calling goroutine is the one that
// claimed this context.
func (c *Context) isOwnerGoroutine() bool {
	return c.ownerSet && goid.Get() == c.ownerGoroutine
}
