// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"github.com/lesha2r/fluid-fetch/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes an HTTP request plan and returns the processed response
// (or error). Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
//
// Code that only needs to execute plans, such as request helpers in
// other packages, should accept a Doer rather than a *Client.
type Doer interface {
	Do(p *request.Plan) (*request.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any idle which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
//
// Unlike Client.Get, Get executes immediately. To make a request plan
// with custom headers, use request.NewPlan and d.Do.
func Get(d Doer, url string) (*request.Response, error) {
	return do(d, "GET", url, nil)
}

// Post uses the specified Doer to issue a POST to the specified URL,
// using the same policies as d.Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes.
func Post(d Doer, url string, body interface{}) (*request.Response, error) {
	return do(d, "POST", url, body)
}

// Put uses the specified Doer to issue a PUT to the specified URL,
// using the same policies as d.Do.
func Put(d Doer, url string, body interface{}) (*request.Response, error) {
	return do(d, "PUT", url, body)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL, using the same policies as d.Do.
func Delete(d Doer, url string) (*request.Response, error) {
	return do(d, "DELETE", url, nil)
}

func do(d Doer, method, url string, body interface{}) (*request.Response, error) {
	p, err := request.NewPlan(method, url)
	if err != nil {
		return nil, err
	}
	p.Body = body
	return d.Do(p)
}
