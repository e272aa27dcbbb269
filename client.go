// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lesha2r/fluid-fetch/cache"
	"github.com/lesha2r/fluid-fetch/middleware"
	"github.com/lesha2r/fluid-fetch/pending"
	"github.com/lesha2r/fluid-fetch/request"
	"github.com/lesha2r/fluid-fetch/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var (
	emptyHandlers = HandlerGroup{}
	discardLogger = slog.New(slog.DiscardHandler)
)

// Middleware holds the two middleware chains of a Client. Request
// middleware runs over each plan before any cache or network decision
// is made. Response middleware runs over each response received from
// the network, before it is cached and returned.
type Middleware struct {
	Request  middleware.Chain[*request.Plan]
	Response middleware.Chain[*request.Response]
}

// A Client is an HTTP client with middleware, response caching and
// in-flight request de-duplication. Its zero value is a valid
// configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, timeout.DefaultPolicy as the timeout policy, empty
// middleware chains, no event handlers and no logging.
//
// Each Client owns its response cache and its registry of in-flight
// requests, so two clients never share cached responses nor cancel
// each other's requests. Client is safe for concurrent use by multiple
// goroutines, and must not be copied after first use.
//
// On top of the HTTP request features provided by the HTTPDoer, Client
// adds the following features:
//
// • Client reads and buffers the entire HTTP response body into a
// request.Response;
//
// • Client runs request middleware over every plan, and response
// middleware over every response received from the network;
//
// • Client serves plans whose cache directive is enabled from its
// response cache, and stores their responses in it;
//
// • Client cancels an in-flight execution when a newer execution with
// the same fingerprint starts, so the newest request always wins;
//
// • Client bounds each execution using a customizable timeout policy;
// and
//
// • Client invokes user-provided handler functions at designated plug-in
// points within the execution, allowing new features such as metrics
// to be mixed in from outside libraries.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// BaseURL is prepended to every plan URL which is not absolute.
	BaseURL string
	// TimeoutPolicy specifies how to set the timeout of each plan
	// execution.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// CacheTTL is how long cached responses stay fresh when the plan's
	// cache directive does not give a TTL. If CacheTTL is zero,
	// cache.DefaultTTL is used.
	CacheTTL time.Duration
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives debug-level records about cache hits,
	// superseded requests, timeouts and failures.
	//
	// If Logger is nil, nothing is logged.
	Logger *slog.Logger
	// Middleware contains the client's request and response
	// middleware chains.
	Middleware Middleware

	cache   cache.Store[*request.Response]
	pending pending.Registry
}

// Do executes an HTTP request plan and returns the processed response,
// following the middleware, cache and timeout policy set on Client,
// and low-level policy set on the underlying HTTPDoer.
//
// The execution proceeds in this order:
//
// 1. Request middleware runs over the plan.
//
// 2. If the plan's cache directive is enabled and the cache holds a
// fresh response for the plan's fingerprint, a copy of it is returned.
// Response middleware does not run for cached responses.
//
// 3. If another execution with the same fingerprint is in flight, it
// is cancelled with cause ErrSuperseded.
//
// 4. The HTTP request is sent, bounded by the timeout policy and the
// plan's cancellation handle, and the response body is buffered.
//
// 5. Response middleware runs over the response.
//
// 6. If the plan's cache directive is enabled, a copy of the processed
// response is stored in the cache.
//
// A non-2XX status code does not result in an error. Any returned error
// is of type *Error, and exactly one of the return values is nil.
func (c *Client) Do(p *request.Plan) (*request.Response, error) {
	e := request.Execution{
		ID:    uuid.NewString(),
		Plan:  p,
		Start: time.Now(),
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)

	c.execute(&e, handlers)
	if e.Err != nil {
		e.Response = nil
		c.logger().Debug("request failed",
			"id", e.ID,
			"method", e.Plan.Method,
			"url", e.Plan.URL,
			"fingerprint", e.Fingerprint,
			"error", e.Err)
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return e.Response, e.Err
}

func (c *Client) execute(e *request.Execution, handlers *HandlerGroup) {
	p := e.Plan
	if err := p.Context().Err(); err != nil {
		e.Err = wrapErr(cancelKind(p.Context()), p, cancelCause(p.Context()))
		return
	}

	p2, err := c.Middleware.Request.Run(p.Context(), p)
	if err == nil && p2 == nil {
		err = errors.New("fluidfetch: request middleware returned nil plan")
	}
	if err != nil {
		e.Err = wrapErr(KindMiddleware, p, err)
		return
	}
	p = p2
	e.Plan = p
	e.Fingerprint = p.Fingerprint()
	log := c.logger().With("id", e.ID, "method", p.Method, "url", p.URL, "fingerprint", e.Fingerprint)

	if p.Cache.Enabled {
		if resp, ok := c.cache.Lookup(e.Fingerprint); ok {
			e.Response = resp.Clone()
			e.CacheHit = true
			log.Debug("cache hit")
			handlers.run(CacheHit, e)
			return
		}
		handlers.run(CacheMiss, e)
	}

	h := p.Handle()
	if prev, ok := c.pending.Swap(e.Fingerprint, h); ok && prev != h {
		prev.Cancel(ErrSuperseded)
		e.Superseded = true
		log.Debug("superseded in-flight request")
		handlers.run(Supersede, e)
	}
	defer c.pending.RemoveIf(e.Fingerprint, h)

	ctx := p.Context()
	if d := c.timeoutPolicy().Timeout(p); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, d, ErrTimeout)
		defer cancel()
	}

	resp, err := c.send(ctx, e, handlers)
	if err != nil {
		e.Err = err
		if e.Timeout() {
			log.Debug("request timed out")
			handlers.run(AfterTimeout, e)
		}
		handlers.run(AfterAttempt, e)
		return
	}
	e.Response = resp
	handlers.run(AfterAttempt, e)

	processed, err := c.Middleware.Response.Run(p.Context(), resp)
	if err == nil && processed == nil {
		err = errors.New("fluidfetch: response middleware returned nil response")
	}
	if err != nil {
		e.Err = wrapErr(KindMiddleware, p, err)
		return
	}
	e.Response = processed

	if p.Cache.Enabled {
		ttl := p.Cache.TTL
		if ttl <= 0 {
			ttl = c.CacheTTL
		}
		c.cache.Put(e.Fingerprint, processed.Clone(), ttl)
	}
}

type result struct {
	resp *http.Response
	body []byte
	err  error
}

// send sends the execution's HTTP request and buffers the response. It
// returns as soon as ctx is done, even if the HTTPDoer ignores the
// request context, in which case the late response is discarded.
func (c *Client) send(ctx context.Context, e *request.Execution, handlers *HandlerGroup) (*request.Response, error) {
	p := e.Plan
	r, err := p.ToRequest(ctx, c.BaseURL)
	if err != nil {
		return nil, wrapErr(KindTransport, p, err)
	}
	e.Request = r
	handlers.run(BeforeAttempt, e)

	doer := c.doer()
	req := e.Request
	ch := make(chan result, 1)
	go func() {
		resp, err := doer.Do(req)
		if err != nil {
			ch <- result{err: err}
			return
		}
		if resp == nil {
			ch <- result{err: errors.New("fluidfetch: nil response from HTTPDoer")}
			return
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		ch <- result{resp: resp, body: body, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if ctx.Err() != nil {
				return nil, wrapErr(cancelKind(ctx), p, cancelCause(ctx))
			}
			return nil, wrapErr(KindTransport, p, res.err)
		}
		return request.NewResponse(res.resp, res.body), nil
	case <-ctx.Done():
		return nil, wrapErr(cancelKind(ctx), p, cancelCause(ctx))
	}
}

// cancelKind classifies why the done context ctx ended.
func cancelKind(ctx context.Context) Kind {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrTimeout) || errors.Is(cause, context.DeadlineExceeded) {
		return KindTimeout
	}

	return KindCanceled
}

func cancelCause(ctx context.Context) error {
	cause := context.Cause(ctx)
	if cause == nil {
		cause = ctx.Err()
	}
	if errors.Is(cause, ErrTimeout) || errors.Is(cause, ErrCanceled) {
		return cause
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, cause)
	}

	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}

// Get returns a lazy GET call to the specified URL. The call executes
// on the first Await, using the same policies followed by Do.
func (c *Client) Get(url string) *Call {
	return c.NewCall(context.Background(), "GET", url)
}

// Post returns a lazy POST call to the specified URL with the given
// body. See request.BodyBytes for the supported body types.
func (c *Client) Post(url string, body interface{}) *Call {
	return c.NewCall(context.Background(), "POST", url).Body(body)
}

// Put returns a lazy PUT call to the specified URL with the given
// body. See request.BodyBytes for the supported body types.
func (c *Client) Put(url string, body interface{}) *Call {
	return c.NewCall(context.Background(), "PUT", url).Body(body)
}

// Delete returns a lazy DELETE call to the specified URL.
func (c *Client) Delete(url string) *Call {
	return c.NewCall(context.Background(), "DELETE", url)
}

// NewCall returns a lazy call with the given method and URL whose
// cancellation handle is derived from ctx.
func (c *Client) NewCall(ctx context.Context, method, url string) *Call {
	p, err := request.NewPlanWithContext(ctx, method, url)
	return newCall(c, p, err)
}

// ClearCache removes every response from the client's cache.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// Invalidate removes the cached response for the plan's fingerprint,
// if any.
func (c *Client) Invalidate(p *request.Plan) {
	c.cache.Delete(p.Fingerprint())
}

// InFlight returns the number of distinct fingerprints with an
// execution currently in flight.
func (c *Client) InFlight() int {
	return c.pending.Len()
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}

	return c.TimeoutPolicy
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return discardLogger
	}

	return c.Logger
}
