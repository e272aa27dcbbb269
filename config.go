// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/lesha2r/fluid-fetch/config"
	"github.com/lesha2r/fluid-fetch/request"
	"github.com/lesha2r/fluid-fetch/timeout"
)

// NewFromConfig returns a Client configured by cfg, logging to w.
//
// The client sends requests with an http.Client whose transport is
// tuned by cfg.Transport, resolves relative URLs against cfg.BaseURL,
// applies cfg.Timeout to every plan without a timeout of its own, and
// keeps cached responses for cfg.CacheTTL by default. Each header in
// cfg.Headers is added by a request middleware to every plan which
// does not already set it.
//
// A nil cfg means config.Default(), and a nil w means os.Stderr.
func NewFromConfig(cfg *config.Config, w io.Writer) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	c := &Client{
		HTTPDoer:      &http.Client{Transport: cfg.Transport.NewTransport()},
		BaseURL:       cfg.BaseURL,
		TimeoutPolicy: timeout.Fallback(cfg.Timeout),
		CacheTTL:      cfg.CacheTTL,
		Logger:        cfg.Log.NewLogger(w),
	}
	if len(cfg.Headers) > 0 {
		c.Middleware.Request.Register(DefaultHeaders(cfg.Headers), nil)
	}

	return c, nil
}

// DefaultHeaders returns a request middleware transform which adds
// each header in h to plans that do not already set it. The plan is
// cloned before it is changed.
func DefaultHeaders(h map[string]string) func(context.Context, *request.Plan) (*request.Plan, error) {
	header := make(http.Header, len(h))
	for name, value := range h {
		header.Set(name, value)
	}

	return func(_ context.Context, p *request.Plan) (*request.Plan, error) {
		var p2 *request.Plan
		for name, values := range header {
			if _, ok := p.Header[name]; ok {
				continue
			}
			if p2 == nil {
				p2 = p.Clone()
				if p2.Header == nil {
					p2.Header = make(http.Header)
				}
			}
			p2.Header[name] = append([]string(nil), values...)
		}
		if p2 == nil {
			return p, nil
		}
		return p2, nil
	}
}
