// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"fmt"

	"github.com/lesha2r/fluid-fetch/request"
)

// A HandlerGroup holds one chain of event handlers per Event. The
// Client runs the chain for an event each time an execution reaches
// that event, handlers in chain order.
//
// The zero value is an empty group ready to use. Install all handlers
// before the group is used by a Client: once the Client is executing
// plans, the group is read concurrently by many executions and must not
// be changed.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the chain for evt, so it runs after every
// handler already installed for that event.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	checkHandler(evt, h)
	g.chains[evt] = append(g.chains[evt], h)
}

// PushFront prepends h to the chain for evt, so it runs before every
// handler already installed for that event.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	checkHandler(evt, h)
	chain := make([]Handler, 0, len(g.chains[evt])+1)
	g.chains[evt] = append(append(chain, h), g.chains[evt]...)
}

// Len returns the number of handlers installed for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if evt < 0 || evt >= eventSentinel {
		return 0
	}

	return len(g.chains[evt])
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

func checkHandler(evt Event, h Handler) {
	if h == nil {
		panic("fluidfetch: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic(fmt.Sprintf("fluidfetch: invalid event %d", int(evt)))
	}
}

// A Handler observes one event of a plan execution. Handlers run
// synchronously on the executing goroutine, so a slow handler delays
// the call it observes.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
