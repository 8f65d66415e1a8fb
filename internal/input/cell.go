package input

import "sync"

// cell is a single-writer value. Writes are serialised so a port to
// multiple goroutines stays race free.
type cell[T any] struct {
	mu sync.RWMutex
	v  T
}

func (c *cell[T]) Load() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}

func (c *cell[T]) Store(v T) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}
