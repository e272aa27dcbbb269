// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"context"
	"sync"
)

// An ID identifies a registered handler within a Chain. IDs are
// assigned in increasing order starting at 1 and are never reused by
// the same Chain, even after Clear.
type ID uint64

// A Transform receives the current value flowing through a Chain and
// returns the value to hand to the next handler.
type Transform[T any] func(ctx context.Context, v T) (T, error)

// A Recover is paired with a Transform and is called only when that
// Transform fails. Returning a nil error swallows the failure and the
// returned value becomes the chain's current value. Returning a non-nil
// error keeps the failure propagating.
type Recover[T any] func(ctx context.Context, err error) (T, error)

type entry[T any] struct {
	id        ID
	transform Transform[T]
	recover   Recover[T]
}

// A Chain is an ordered list of transform/recover handler pairs applied
// sequentially to a value of type T. Its zero value is an empty chain
// ready to use.
//
// A Chain is safe for concurrent use by multiple goroutines. Each Run
// works on a snapshot of the handler list taken when the run starts,
// so handlers registered or removed while a run is in progress only
// affect later runs.
type Chain[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	last    ID
}

// Register appends a handler pair to the back of the chain and returns
// its ID. The recover function may be nil; the transform may not.
func (c *Chain[T]) Register(transform Transform[T], recover Recover[T]) ID {
	if transform == nil {
		panic("fluidfetch/middleware: nil transform")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.last++
	c.entries = append(c.entries, entry[T]{
		id:        c.last,
		transform: transform,
		recover:   recover,
	})
	return c.last
}

// Remove removes the handler pair with the given ID. Removing an ID
// that is not registered does nothing.
func (c *Chain[T]) Remove(id ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		if c.entries[i].id == id {
			entries := make([]entry[T], 0, len(c.entries)-1)
			entries = append(entries, c.entries[:i]...)
			c.entries = append(entries, c.entries[i+1:]...)
			return
		}
	}
}

// Clear removes every handler pair from the chain.
func (c *Chain[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
}

// Len returns the number of registered handler pairs.
func (c *Chain[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Run passes v through every handler in registration order and returns
// the value produced by the last one. An empty chain returns v as-is.
//
// If a transform fails and has no paired recover function, Run stops
// immediately and returns the zero value of T with the failure.
func (c *Chain[T]) Run(ctx context.Context, v T) (T, error) {
	for _, e := range c.snapshot() {
		next, err := e.transform(ctx, v)
		if err != nil {
			if e.recover == nil {
				var zero T
				return zero, err
			}
			next, err = e.recover(ctx, err)
			if err != nil {
				var zero T
				return zero, err
			}
		}
		v = next
	}

	return v, nil
}

// snapshot relies on Remove and Clear never writing into a backing
// array that a previous snapshot may still be reading.
func (c *Chain[T]) snapshot() []entry[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries[:len(c.entries):len(c.entries)]
}
