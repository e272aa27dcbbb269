// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"fmt"
	"testing"

	"github.com/lesha2r/fluid-fetch/request"
	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var execs []*request.Execution
	h1 := &testHandler{seq: 1, evts: &evts, execs: &execs}
	h2 := &testHandler{seq: 2, evts: &evts, execs: &execs}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.Panics(t, func() { g.PushBack(BeforeExecutionStart, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushBack(CacheHit, h1)
	})
	t.Run("run", func(t *testing.T) {
		e1 := &request.Execution{ID: "1"}
		e2 := &request.Execution{ID: "2"}
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(AfterTimeout, e1)
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeExecutionStart, e1)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Execution{e1, e1}, execs)
		evts = evts[:0]
		execs = execs[:0]
		g.run(CacheHit, e2)
		assert.Equal(t, []string{"1.CacheHit"}, evts)
		assert.Equal(t, []*request.Execution{e2}, execs)
		evts = evts[:0]
		execs = execs[:0]
		g.run(BeforeExecutionStart, e2)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Execution{e2, e2}, execs)
	})
	t.Run("PushFront", func(t *testing.T) {
		h3 := &testHandler{seq: 3, evts: &evts, execs: &execs}
		assert.Panics(t, func() { g.PushFront(CacheHit, nil) })
		assert.Panics(t, func() { g.PushFront(Event(-1), h3) })
		g.PushFront(BeforeExecutionStart, h3)
		evts = evts[:0]
		execs = execs[:0]
		g.run(BeforeExecutionStart, &request.Execution{})
		assert.Equal(t, []string{"3.BeforeExecutionStart", "1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
	})
	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 3, g.Len(BeforeExecutionStart))
		assert.Equal(t, 1, g.Len(CacheHit))
		assert.Equal(t, 0, g.Len(AfterTimeout))
		assert.Equal(t, 0, g.Len(Event(123)))
	})
	t.Run("empty group", func(t *testing.T) {
		empty := &HandlerGroup{}
		assert.NotPanics(t, func() { empty.run(AfterExecutionEnd, &request.Execution{}) })
		assert.Equal(t, 0, empty.Len(AfterExecutionEnd))
	})
}

type testHandler struct {
	seq   int
	evts  *[]string
	execs *[]*request.Execution
}

func (h *testHandler) Handle(evt Event, e *request.Execution) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.execs = append(*h.execs, e)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _e *request.Execution
	var f = func(evt Event, e *request.Execution) {
		_evt = evt
		_e = e
	}
	h := HandlerFunc(f)
	e := &request.Execution{}
	h.Handle(Supersede, e)

	assert.Equal(t, Supersede, _evt)
	assert.Same(t, e, _e)
}
