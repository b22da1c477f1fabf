// Package latest holds single-slot cells for values produced on one goroutine
// and sampled on another, where only the newest value matters.
package latest

import "sync/atomic"

// Cell stores the most recently published value. Publish and Load never block
// and a reader always sees a whole value, never a partially written one.
type Cell[T any] struct {
	p atomic.Pointer[T]
}

// Publish replaces the stored value.
func (c *Cell[T]) Publish(v T) {
	c.p.Store(&v)
}

// Load returns the last published value and whether anything was published.
func (c *Cell[T]) Load() (T, bool) {
	if v := c.p.Load(); v != nil {
		return *v, true
	}
	var zero T
	return zero, false
}

// Reset forgets the stored value.
func (c *Cell[T]) Reset() {
	c.p.Store(nil)
}
