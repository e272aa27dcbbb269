// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

const (
	jsonContentType = "application/json"
	formContentType = "application/x-www-form-urlencoded"
)

// BodyBytes converts a generic body parameter to the byte slice sent
// as a request body.
//
// The conversion logic is:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself is returned.
//
// • If body is a string, its bytes are returned.
//
// • If body is a url.Values, its URL encoding is returned.
//
// • If body is an io.Reader or io.ReadCloser, the whole contents of
// the reader are returned (after closing it if it implements Closer).
//
// • Any other value is encoded as JSON. If encoding fails, a nil byte
// slice and the error are returned.
func BodyBytes(body interface{}) ([]byte, error) {
	b, _, err := encodeBody(body)
	return b, err
}

func encodeBody(body interface{}) ([]byte, string, error) {
	switch x := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return []byte(x), "", nil
	case []byte:
		return x, "", nil
	case url.Values:
		return []byte(x.Encode()), formContentType, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, "", err
		}
		err = x.Close()
		if err != nil {
			return nil, "", err
		}
		return b, "", nil
	case io.Reader:
		return encodeBody(io.NopCloser(x))
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, "", err
		}
		return b, jsonContentType, nil
	}
}

func setBody(r *http.Request, b []byte) {
	r.Body = io.NopCloser(bytes.NewReader(b))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}
	r.ContentLength = int64(len(b))
}
