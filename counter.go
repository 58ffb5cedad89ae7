package prudp

import "sync/atomic"

// Counter is a small atomic monotonic counter, used for sequence ids and the
// server's connection id allocator. Increment wraps the way the underlying
// integer type wraps; callers that need wire-width truncation (e.g. a
// uint16 sequence id carried in a uint32 Counter) should mask the result
// themselves.
type Counter[T uint16 | uint32] struct {
	value atomic.Uint32
}

// NewCounter returns a Counter seeded at start.
func NewCounter[T uint16 | uint32](start T) *Counter[T] {
	c := &Counter[T]{}
	c.value.Store(uint32(start))
	return c
}

// Value returns the counter's current value without mutating it.
func (c *Counter[T]) Value() T {
	return T(c.value.Load())
}

// Increment returns the counter's current value and advances it by one.
func (c *Counter[T]) Increment() T {
	return T(c.value.Add(1) - 1)
}

// Set overwrites the counter's value, used when a Syn/Connect exchange
// re-seeds the sequence id.
func (c *Counter[T]) Set(value T) {
	c.value.Store(uint32(value))
}
