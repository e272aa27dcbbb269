// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// A Response is a fully buffered HTTP response.
//
// Responses flow through the client's response middleware and may be
// stored in the client's cache. The client hands each caller its own
// copy of a cached Response, so callers may modify the one they get.
type Response struct {
	// StatusCode is the HTTP status code, e.g. 200.
	StatusCode int

	// Status is the status line text, e.g. "200 OK".
	Status string

	// Header contains the response header fields.
	Header http.Header

	// Body is the complete response body. It is never nil for a
	// response read from the network, but may have zero length.
	Body []byte

	// URL is the URL the request was sent to.
	URL string
}

// NewResponse buffers an HTTP response whose body has already been
// read into body.
func NewResponse(r *http.Response, body []byte) *Response {
	resp := &Response{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Header:     r.Header,
		Body:       body,
	}
	if r.Request != nil && r.Request.URL != nil {
		resp.URL = r.Request.URL.String()
	}
	return resp
}

// Clone returns a deep copy of r. Clone of a nil Response is nil.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	r2 := new(Response)
	*r2 = *r
	r2.Header = r.Header.Clone()
	if r.Body != nil {
		r2.Body = bytes.Clone(r.Body)
	}
	return r2
}

// OK reports whether the status code is in the 2XX range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body as JSON into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}
