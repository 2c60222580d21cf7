package cache

import (
	"sync/atomic"
	"time"
)

// Latest holds the most recently stored value. A Store replaces the previous
// value wholesale; readers never observe a partial update.
type Latest[T any] struct {
	current atomic.Pointer[entry[T]]
	now     func() time.Time
}

type entry[T any] struct {
	value    T
	storedAt time.Time
}

func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{now: time.Now}
}

func (c *Latest[T]) Store(value T) {
	c.current.Store(&entry[T]{value: value, storedAt: c.clock()})
}

// Load returns the stored value and whether one was ever stored.
func (c *Latest[T]) Load() (T, bool) {
	e := c.current.Load()
	if e == nil {
		var zero T
		return zero, false
	}
	return e.value, true
}

// StoredAt is the zero time until the first Store.
func (c *Latest[T]) StoredAt() time.Time {
	if e := c.current.Load(); e != nil {
		return e.storedAt
	}
	return time.Time{}
}

func (c *Latest[T]) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
