// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "fluidfetch/request: nil context"
)

// A CacheDirective tells the executing client whether to serve a plan
// from, and store its response in, the client's response cache.
//
// The zero value disables caching. Enabled with a zero TTL uses the
// client's default time-to-live.
type CacheDirective struct {
	Enabled bool
	TTL     time.Duration
}

// A Plan describes a single logical HTTP request for execution by a
// client.
//
// A Plan is mutable until it is handed to a client for execution.
// Changing a Plan after its execution has started has undefined
// results.
//
// Every Plan owns a cancellation Handle which controls the lifetime of
// its execution. Cancelling the handle aborts the in-flight call, and
// the executing client cancels it when a newer call with the same
// fingerprint supersedes this one.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, DELETE). An
	// empty string means GET.
	Method string

	// URL is the request target. It may be absolute, or relative to
	// the base URL of the client executing the plan.
	URL string

	// Header contains the request header fields to be sent.
	Header http.Header

	// Params holds scalar query parameter values keyed by name. They
	// are encoded in key order and appended to the URL query.
	Params map[string]interface{}

	// Body is the optional request payload. See BodyBytes for the
	// supported types.
	Body interface{}

	// Cache is the plan's cache directive.
	Cache CacheDirective

	// Timeout bounds the execution of the plan. Zero means no timeout
	// beyond what the client's timeout policy imposes.
	Timeout time.Duration

	h *Handle
}

// A Handle is the cancellation handle owned by a Plan. Clones of a
// Plan share the same Handle.
type Handle struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
}

func newHandle(parent context.Context) *Handle {
	ctx, cancel := context.WithCancelCause(parent)
	return &Handle{ctx: ctx, cancel: cancel}
}

// Context returns the context which is done when the handle is
// cancelled or its parent context is done.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// Cancel cancels the handle, recording cause as the reason. A nil
// cause records context.Canceled. Only the first cancellation counts.
func (h *Handle) Cancel(cause error) {
	h.cancel(cause)
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url)
}

// NewPlanWithContext returns a new Plan given a method and URL. The
// plan's cancellation handle is derived from ctx, which must not be
// nil.
func NewPlanWithContext(ctx context.Context, method, url string) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("fluidfetch/request: invalid method %q", method)
	}
	if _, err := urlpkg.Parse(url); err != nil {
		return nil, err
	}
	return &Plan{
		Method: method,
		URL:    url,
		Header: make(http.Header),
		Params: make(map[string]interface{}),
		h:      newHandle(ctx),
	}, nil
}

// Handle returns the plan's cancellation handle. A Plan built as a
// struct literal gets a handle derived from the background context on
// first use.
func (p *Plan) Handle() *Handle {
	if p.h == nil {
		p.h = newHandle(context.Background())
	}
	return p.h
}

// Context returns the context of the plan's cancellation handle.
func (p *Plan) Context() context.Context {
	return p.Handle().Context()
}

// Cancel cancels the plan's execution, recording cause as the reason.
func (p *Plan) Cancel(cause error) {
	p.Handle().Cancel(cause)
}

// Clone returns a copy of p whose Header and Params can be modified
// without affecting p. The body value and the cancellation handle are
// shared with p.
func (p *Plan) Clone() *Plan {
	p2 := new(Plan)
	*p2 = *p
	p2.h = p.Handle()
	p2.Header = p.Header.Clone()
	p2.Params = maps.Clone(p.Params)
	return p2
}

// Fingerprint returns the key identifying p for caching and
// de-duplication. It is derived from the method, the URL and the
// encoded query parameters only; headers and body do not contribute.
func (p *Plan) Fingerprint() string {
	return p.method() + ":" + p.URL + ":" + EncodeParams(p.Params)
}

// ResolveURL joins base and the plan's URL and appends the plan's
// encoded query parameters. An absolute plan URL ignores base.
func (p *Plan) ResolveURL(base string) (*urlpkg.URL, error) {
	u, err := urlpkg.Parse(joinURL(base, p.URL))
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	if q := EncodeParams(p.Params); q != "" {
		if u.RawQuery != "" {
			u.RawQuery += "&" + q
		} else {
			u.RawQuery = q
		}
	}
	return u, nil
}

// ToRequest creates the HTTP request corresponding to p, resolved
// against base. The context of the new request is set to ctx, which
// may not be nil.
//
// The request body is produced by BodyBytes. When the body is encoded
// as JSON or as a form, the matching Content-Type is set unless the
// plan already has one.
func (p *Plan) ToRequest(ctx context.Context, base string) (*http.Request, error) {
	u, err := p.ResolveURL(base)
	if err != nil {
		return nil, err
	}
	b, contentType, err := encodeBody(p.Body)
	if err != nil {
		return nil, err
	}
	r, err := http.NewRequestWithContext(ctx, p.method(), u.String(), nil)
	if err != nil {
		return nil, err
	}
	r.Header = p.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(b) > 0 {
		setBody(r, b)
		if contentType != "" && r.Header.Get("Content-Type") == "" {
			r.Header.Set("Content-Type", contentType)
		}
	}
	return r, nil
}

// EncodeParams URL-encodes scalar query parameters sorted by key.
// Values are formatted with fmt.Sprint and nil values are skipped.
func EncodeParams(params map[string]interface{}) string {
	if len(params) == 0 {
		return ""
	}
	vals := make(urlpkg.Values, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		vals.Set(k, fmt.Sprint(v))
	}
	return vals.Encode()
}

// ValidHeader reports an error if name is not a valid HTTP header
// field name or value is not a valid field value.
func ValidHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("fluidfetch/request: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("fluidfetch/request: invalid value for header %q", name)
	}
	return nil
}

func (p *Plan) method() string {
	if p.Method == "" {
		return "GET"
	}
	return p.Method
}

func joinURL(base, target string) string {
	if base == "" || target == "" {
		return base + target
	}
	if u, err := urlpkg.Parse(target); err == nil && u.IsAbs() {
		return target
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(target, "/")
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
