// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"sync"
	"time"

	"github.com/lesha2r/fluid-fetch/request"
)

// A Call is a lazily executed request built with a chain of builder
// methods:
//
//	resp, err := client.Get("/users").
//		Param("page", 2).
//		Header("Authorization", token).
//		Cache(true).
//		Await()
//
// Nothing is sent until the first call to Await (or Start). The outcome
// of that single execution is memoized, and every later Await returns
// the same response and error. Builder methods called after execution
// has started are ignored.
//
// The first builder error, such as an invalid header, is kept and
// returned by Await without executing the request.
//
// A Call is safe for concurrent use by multiple goroutines.
type Call struct {
	client *Client
	plan   *request.Plan

	mu      sync.Mutex
	err     error
	started bool

	once sync.Once
	done chan struct{}
	resp *request.Response
	rerr error
}

func newCall(c *Client, p *request.Plan, err error) *Call {
	return &Call{
		client: c,
		plan:   p,
		err:    err,
		done:   make(chan struct{}),
	}
}

// build applies f to the plan unless execution has started or an
// earlier builder error was recorded.
func (c *Call) build(f func(p *request.Plan) error) *Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.err != nil {
		return c
	}
	c.err = f(c.plan)
	return c
}

// Header sets the header field name to value, replacing any existing
// values.
func (c *Call) Header(name, value string) *Call {
	return c.build(func(p *request.Plan) error {
		if err := request.ValidHeader(name, value); err != nil {
			return err
		}
		p.Header.Set(name, value)
		return nil
	})
}

// Headers sets each header field in h.
func (c *Call) Headers(h map[string]string) *Call {
	return c.build(func(p *request.Plan) error {
		for name, value := range h {
			if err := request.ValidHeader(name, value); err != nil {
				return err
			}
		}
		for name, value := range h {
			p.Header.Set(name, value)
		}
		return nil
	})
}

// Param sets the scalar query parameter key to v. A nil v removes the
// parameter.
func (c *Call) Param(key string, v interface{}) *Call {
	return c.build(func(p *request.Plan) error {
		if v == nil {
			delete(p.Params, key)
		} else {
			p.Params[key] = v
		}
		return nil
	})
}

// Params sets each query parameter in params.
func (c *Call) Params(params map[string]interface{}) *Call {
	return c.build(func(p *request.Plan) error {
		for k, v := range params {
			p.Params[k] = v
		}
		return nil
	})
}

// Body sets the request body. See request.BodyBytes for the supported
// body types.
func (c *Call) Body(body interface{}) *Call {
	return c.build(func(p *request.Plan) error {
		p.Body = body
		return nil
	})
}

// Cache enables or disables response caching for the call, using the
// client's default time-to-live.
func (c *Call) Cache(enabled bool) *Call {
	return c.build(func(p *request.Plan) error {
		p.Cache = request.CacheDirective{Enabled: enabled}
		return nil
	})
}

// CacheFor enables response caching for the call with time-to-live d.
// A d of zero or less disables caching.
func (c *Call) CacheFor(d time.Duration) *Call {
	return c.build(func(p *request.Plan) error {
		if d <= 0 {
			p.Cache = request.CacheDirective{}
		} else {
			p.Cache = request.CacheDirective{Enabled: true, TTL: d}
		}
		return nil
	})
}

// Timeout bounds the execution of the call. A d of zero or less means
// no timeout, unless the client's timeout policy imposes one.
func (c *Call) Timeout(d time.Duration) *Call {
	return c.build(func(p *request.Plan) error {
		p.Timeout = d
		return nil
	})
}

// Cancel aborts the call. If the call is in flight, Await returns an
// *Error of kind KindCanceled. If it has not started yet, it fails
// without sending anything once awaited.
func (c *Call) Cancel() {
	if c.plan != nil {
		c.plan.Cancel(ErrCanceled)
	}
}

// Plan returns the plan the call will execute, or nil if the call
// could not be created.
func (c *Call) Plan() *request.Plan {
	return c.plan
}

// Start begins executing the call in a new goroutine, if it has not
// started already, and returns c. Use Done or Await to collect the
// outcome.
func (c *Call) Start() *Call {
	c.once.Do(func() {
		c.begin()
		go c.execute()
	})
	return c
}

// Await executes the call if it has not been executed yet, waits for
// it to finish, and returns its outcome. Every call to Await returns
// the same response and error.
func (c *Call) Await() (*request.Response, error) {
	c.once.Do(func() {
		c.begin()
		c.execute()
	})
	<-c.done
	return c.resp, c.rerr
}

// Done returns a channel which is closed when the call's execution has
// finished. Done does not start the execution.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

func (c *Call) begin() {
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
}

func (c *Call) execute() {
	defer close(c.done)
	c.mu.Lock()
	err := c.err
	c.mu.Unlock()
	if err != nil {
		c.rerr = err
		return
	}
	c.resp, c.rerr = c.client.Do(c.plan)
}
