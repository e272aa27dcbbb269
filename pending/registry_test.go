// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pending

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testHandle struct {
	causes []error
}

func (h *testHandle) Cancel(cause error) {
	h.causes = append(h.causes, cause)
}

func TestRegistry(t *testing.T) {
	var r Registry
	h1 := &testHandle{}
	h2 := &testHandle{}

	t.Run("empty", func(t *testing.T) {
		h, ok := r.Get("k")
		assert.False(t, ok)
		assert.Nil(t, h)
		r.Remove("k")
		assert.False(t, r.RemoveIf("k", h1))
		assert.Equal(t, 0, r.Len())
	})
	t.Run("Register", func(t *testing.T) {
		r.Register("k", h1)
		h, ok := r.Get("k")
		assert.True(t, ok)
		assert.Same(t, h1, h)
		r.Register("k", h2)
		h, _ = r.Get("k")
		assert.Same(t, h2, h)
		assert.Equal(t, 1, r.Len())
		assert.Empty(t, h1.causes, "registry never cancels on its own")
	})
	t.Run("RemoveIf", func(t *testing.T) {
		assert.False(t, r.RemoveIf("k", h1))
		h, ok := r.Get("k")
		assert.True(t, ok)
		assert.Same(t, h2, h)
		assert.True(t, r.RemoveIf("k", h2))
		_, ok = r.Get("k")
		assert.False(t, ok)
	})
	t.Run("Swap", func(t *testing.T) {
		prev, ok := r.Swap("s", h1)
		assert.False(t, ok)
		assert.Nil(t, prev)
		prev, ok = r.Swap("s", h2)
		assert.True(t, ok)
		assert.Same(t, h1, prev)
		prev.Cancel(errors.New("superseded"))
		assert.Len(t, h1.causes, 1)
	})
	t.Run("Remove", func(t *testing.T) {
		r.Remove("s")
		_, ok := r.Get("s")
		assert.False(t, ok)
		assert.Equal(t, 0, r.Len())
	})
}
