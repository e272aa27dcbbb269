// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the time-to-live used by a Store when neither the
// caller nor the Store's own DefaultTTL field specify one.
const DefaultTTL = time.Hour

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// A Store maps keys to values which expire after a time-to-live. Its
// zero value is an empty store ready to use.
//
// Expired entries are not purged proactively: an entry is removed
// the next time it is looked up after its expiry. A Store has no
// maximum size.
//
// A Store is safe for concurrent use by multiple goroutines. It hands
// back exactly the value it was given, so callers that need isolation
// between readers must store and return copies.
type Store[V any] struct {
	// DefaultTTL is the time-to-live applied by Put when it is called
	// with a non-positive ttl. If DefaultTTL is also non-positive, the
	// package constant DefaultTTL is used.
	DefaultTTL time.Duration

	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

// Lookup returns the value stored under key if it exists and has not
// expired. An expired entry is evicted and reported as absent.
func (s *Store[V]) Lookup(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if !s.clock().Before(e.expiresAt) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Put stores v under key, replacing any existing entry, with an expiry
// of now plus ttl. A non-positive ttl selects the default time-to-live.
func (s *Store[V]) Put(key string, v V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.DefaultTTL
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[string]entry[V])
	}
	s.entries[key] = entry[V]{
		value:     v,
		expiresAt: s.clock().Add(ttl),
	}
}

// Delete removes the entry stored under key, if any.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Clear removes every entry.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
}

// Len returns the number of stored entries, including expired entries
// which have not been looked up since they expired.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store[V]) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
