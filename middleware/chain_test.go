// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendStep(s string) Transform[string] {
	return func(_ context.Context, v string) (string, error) {
		return v + s, nil
	}
}

func TestChain(t *testing.T) {
	t.Run("empty", testChainEmpty)
	t.Run("order", testChainOrder)
	t.Run("remove", testChainRemove)
	t.Run("clear", testChainClear)
	t.Run("recover", testChainRecover)
	t.Run("no recover", testChainNoRecover)
	t.Run("recover fails", testChainRecoverFails)
	t.Run("snapshot", testChainSnapshot)
	t.Run("concurrent runs", testChainConcurrentRuns)
}

func testChainEmpty(t *testing.T) {
	var c Chain[string]
	v, err := c.Run(context.Background(), "x")
	assert.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.Equal(t, 0, c.Len())
}

func testChainOrder(t *testing.T) {
	var c Chain[string]
	ids := []ID{
		c.Register(appendStep("a"), nil),
		c.Register(appendStep("b"), nil),
		c.Register(appendStep("c"), nil),
	}
	assert.Equal(t, []ID{1, 2, 3}, ids)
	v, err := c.Run(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "abc", v)
	assert.Panics(t, func() { c.Register(nil, nil) })
}

func testChainRemove(t *testing.T) {
	testCases := []struct {
		name   string
		remove []int
		want   string
	}{
		{"none", nil, "abcd"},
		{"first", []int{0}, "bcd"},
		{"middle", []int{1, 2}, "ad"},
		{"last", []int{3}, "abc"},
		{"all", []int{3, 0, 2, 1}, ""},
		{"twice", []int{1, 1}, "acd"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var c Chain[string]
			var ids []ID
			for _, s := range []string{"a", "b", "c", "d"} {
				ids = append(ids, c.Register(appendStep(s), nil))
			}
			for _, i := range testCase.remove {
				c.Remove(ids[i])
			}
			c.Remove(ID(999))
			v, err := c.Run(context.Background(), "")
			assert.NoError(t, err)
			assert.Equal(t, testCase.want, v)
		})
	}
}

func testChainClear(t *testing.T) {
	var c Chain[string]
	c.Register(appendStep("a"), nil)
	c.Register(appendStep("b"), nil)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	id := c.Register(appendStep("c"), nil)
	assert.Equal(t, ID(3), id, "IDs are never reused")
	v, err := c.Run(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "c", v)
}

func testChainRecover(t *testing.T) {
	var c Chain[string]
	boom := errors.New("boom")
	var recovered error
	recoverCalls := 0
	c.Register(appendStep("a"), func(context.Context, error) (string, error) {
		recoverCalls++
		return "", nil
	})
	c.Register(func(context.Context, string) (string, error) {
		return "", boom
	}, func(_ context.Context, err error) (string, error) {
		recovered = err
		return "substitute", nil
	})
	c.Register(appendStep("!"), nil)
	v, err := c.Run(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "substitute!", v)
	assert.Same(t, boom, recovered)
	assert.Equal(t, 0, recoverCalls, "recover must not run when transform succeeds")
}

func testChainNoRecover(t *testing.T) {
	var c Chain[string]
	boom := errors.New("boom")
	after := false
	c.Register(appendStep("a"), nil)
	c.Register(func(context.Context, string) (string, error) {
		return "ignored", boom
	}, nil)
	c.Register(func(_ context.Context, v string) (string, error) {
		after = true
		return v, nil
	}, nil)
	v, err := c.Run(context.Background(), "")
	assert.Same(t, boom, err)
	assert.Equal(t, "", v)
	assert.False(t, after)
}

func testChainRecoverFails(t *testing.T) {
	var c Chain[string]
	boom := errors.New("boom")
	rethrown := errors.New("rethrown")
	c.Register(func(context.Context, string) (string, error) {
		return "", boom
	}, func(_ context.Context, err error) (string, error) {
		return "", rethrown
	})
	c.Register(appendStep("never"), nil)
	_, err := c.Run(context.Background(), "")
	assert.Same(t, rethrown, err)
}

func testChainSnapshot(t *testing.T) {
	var c Chain[string]
	var lateID ID
	var firstID ID
	firstID = c.Register(func(_ context.Context, v string) (string, error) {
		lateID = c.Register(appendStep("late"), nil)
		c.Remove(firstID)
		return v + "a", nil
	}, nil)
	c.Register(appendStep("b"), nil)

	v, err := c.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ab", v)
	assert.Equal(t, ID(3), lateID)

	v, err = c.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "blate", v)
}

func testChainConcurrentRuns(t *testing.T) {
	var c Chain[int]
	for i := 0; i < 10; i++ {
		c.Register(func(_ context.Context, v int) (int, error) {
			return v + 1, nil
		}, nil)
	}
	var wg sync.WaitGroup
	results := make([]int, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Run(context.Background(), i*100)
			assert.NoError(t, err)
			results[i] = v
			if i%10 == 0 {
				c.Register(func(_ context.Context, v int) (int, error) {
					return v, errors.New("late " + strconv.Itoa(i))
				}, func(_ context.Context, _ error) (int, error) {
					return 0, nil
				})
			}
		}(i)
	}
	wg.Wait()
	for i, v := range results {
		if v != 0 {
			assert.Equal(t, i*100+10, v)
		}
	}
}
