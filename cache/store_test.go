// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestStore() (*Store[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return &Store[string]{now: clock.now}, clock
}

func TestStoreLookup(t *testing.T) {
	s, clock := newTestStore()

	_, ok := s.Lookup("missing")
	assert.False(t, ok)

	s.Put("k", "v", time.Minute)
	v, ok := s.Lookup("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	clock.advance(time.Minute - time.Nanosecond)
	_, ok = s.Lookup("k")
	assert.True(t, ok)

	clock.advance(time.Nanosecond)
	v, ok = s.Lookup("k")
	assert.False(t, ok, "entry is invisible once now reaches expiry")
	assert.Equal(t, "", v)
	assert.Equal(t, 0, s.Len(), "expired entry is evicted on read")
}

func TestStoreLazyEviction(t *testing.T) {
	s, clock := newTestStore()
	s.Put("a", "1", time.Second)
	s.Put("b", "2", time.Hour)
	clock.advance(time.Minute)
	assert.Equal(t, 2, s.Len(), "expired entries linger until looked up")
	_, ok := s.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStoreDefaultTTL(t *testing.T) {
	testCases := []struct {
		name       string
		storeTTL   time.Duration
		ttl        time.Duration
		wantExpiry time.Duration
	}{
		{"package default", 0, 0, DefaultTTL},
		{"negative ttl", 0, -time.Second, DefaultTTL},
		{"store default", 5 * time.Minute, 0, 5 * time.Minute},
		{"explicit ttl", 5 * time.Minute, 10 * time.Second, 10 * time.Second},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			s, clock := newTestStore()
			s.DefaultTTL = testCase.storeTTL
			s.Put("k", "v", testCase.ttl)
			clock.advance(testCase.wantExpiry - time.Nanosecond)
			_, ok := s.Lookup("k")
			assert.True(t, ok)
			clock.advance(time.Nanosecond)
			_, ok = s.Lookup("k")
			assert.False(t, ok)
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	s, clock := newTestStore()
	s.Put("k", "old", time.Second)
	s.Put("k", "new", time.Hour)
	clock.advance(time.Minute)
	v, ok := s.Lookup("k")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestStoreDeleteAndClear(t *testing.T) {
	var s Store[int]
	s.Delete("nothing")
	s.Put("a", 1, 0)
	s.Put("b", 2, 0)
	s.Delete("a")
	_, ok := s.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	s.Clear()
	assert.Equal(t, 0, s.Len())
	s.Put("c", 3, 0)
	v, ok := s.Lookup("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestStoreConcurrent(t *testing.T) {
	var s Store[int]
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i % 5)
			s.Put(key, i, time.Minute)
			_, _ = s.Lookup(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, s.Len())
}
