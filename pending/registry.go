// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pending tracks the cancellation handle of the in-flight call
// for each request fingerprint, so that a newer call can cancel an
// older duplicate.
package pending

import "sync"

// A Handle cancels an in-flight call, recording cause as the reason.
//
// Handles are compared with ==, so implementations should be pointer
// types or otherwise comparable.
type Handle interface {
	Cancel(cause error)
}

// A Registry maps keys to the Handle of the call currently in flight
// for that key. Its zero value is an empty registry ready to use.
//
// A Registry is safe for concurrent use by multiple goroutines. It
// never cancels anything itself; callers decide what to do with the
// previous handle returned by Swap or Get.
type Registry struct {
	mu sync.Mutex
	m  map[string]Handle
}

// Get returns the handle registered under key, if any.
func (r *Registry) Get(key string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.m[key]
	return h, ok
}

// Register stores h under key, unconditionally replacing any handle
// already registered.
func (r *Registry) Register(key string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.register(key, h)
}

// Swap registers h under key and returns the handle it replaced. The
// lookup and the replacement happen atomically.
func (r *Registry) Swap(key string, h Handle) (prev Handle, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok = r.m[key]
	r.register(key, h)
	return
}

// Remove deletes the handle registered under key. Removing an absent
// key does nothing.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.m, key)
}

// RemoveIf deletes the handle registered under key only if it is h,
// and reports whether it did. A handle registered later for the same
// key is left untouched.
func (r *Registry) RemoveIf(key string, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.m[key]; ok && cur == h {
		delete(r.m, key)
		return true
	}
	return false
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.m)
}

func (r *Registry) register(key string, h Handle) {
	if r.m == nil {
		r.m = make(map[string]Handle)
	}
	r.m[key] = h
}
