// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/lesha2r/fluid-fetch/transient"
)

// An Execution represents the state of a single Plan execution.
//
// When a plan is executed, an Execution is created for it and handed
// to the client's event handlers as the execution progresses: after
// request middleware, when the response cache is consulted, when the
// HTTP request is sent, and when the execution ends.
//
// Event handlers may store arbitrary data in an Execution using its
// SetValue method and read it back using the Value method. They should
// otherwise treat the exported fields as read-only.
type Execution struct {
	// ID uniquely identifies the execution. It is useful for
	// correlating log lines and traces.
	ID string

	// Plan is the plan being executed. Once request middleware has
	// run, Plan refers to the plan the middleware returned.
	Plan *Plan

	// Fingerprint is the plan's fingerprint, computed after request
	// middleware has run. It is empty before then.
	Fingerprint string

	// Start is the start time of the execution.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends.
	End time.Time

	// Request is the HTTP request handed to the transport. It is nil
	// until the request is built, and stays nil if the execution was
	// served from the cache or failed before reaching the transport.
	Request *http.Request

	// Response is the response from the transport, or the processed
	// response once response middleware has run. For a cache hit it
	// is the caller's copy of the cached response.
	Response *Response

	// Err is the error ending the execution, if any. Once the
	// execution has ended, Err has the same value as the error
	// returned by the client.
	Err error

	// CacheHit indicates the execution was served from the cache.
	CacheHit bool

	// Superseded indicates this execution cancelled an older in-flight
	// execution with the same fingerprint.
	Superseded bool

	data context.Context
}

// StatusCode returns the status code of the execution's response, or
// 0 if there is no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
