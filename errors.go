// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

import (
	"errors"
	"strings"

	"github.com/lesha2r/fluid-fetch/request"
)

// A Kind classifies the reason a plan execution failed.
type Kind int

const (
	// KindTransport indicates the HTTPDoer failed to produce a response,
	// or the response body could not be read.
	KindTransport Kind = iota
	// KindTimeout indicates the execution's timeout elapsed before the
	// transport settled.
	KindTimeout
	// KindCanceled indicates the execution was cancelled, either by
	// its owner or because a newer execution with the same fingerprint
	// superseded it.
	KindCanceled
	// KindMiddleware indicates a request or response middleware
	// transform failed and no recover function absorbed the failure.
	KindMiddleware
)

var kindNames = []string{
	"transport",
	"timeout",
	"canceled",
	"middleware",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

var (
	// ErrTimeout is the cancellation cause recorded when an execution's
	// timeout elapses.
	ErrTimeout = errors.New("fluidfetch: timeout exceeded")
	// ErrCanceled is the cause reported when an execution is cancelled
	// without a more specific cause.
	ErrCanceled = errors.New("fluidfetch: request canceled")
	// ErrSuperseded is the cancellation cause recorded when a newer
	// execution with the same fingerprint supersedes an in-flight one.
	// errors.Is(ErrSuperseded, ErrCanceled) reports true.
	ErrSuperseded error = &supersededError{}
)

type supersededError struct{}

func (*supersededError) Error() string {
	return "fluidfetch: request superseded by a newer request"
}

func (*supersededError) Is(target error) bool {
	return target == ErrCanceled
}

// Error is the error returned by Client.Do when a plan execution fails.
// It records the failure Kind along with the operation and URL that
// caused it, in the manner of url.Error.
type Error struct {
	Kind Kind
	Op   string
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.URL == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " \"" + e.URL + "\": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the execution failed because its timeout
// elapsed, or because the transport itself reported a timeout.
func (e *Error) Timeout() bool {
	if e.Kind == KindTimeout {
		return true
	} else if e.Kind != KindTransport {
		return false
	}

	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// Canceled reports whether the execution was cancelled or superseded.
func (e *Error) Canceled() bool {
	return e.Kind == KindCanceled
}

func wrapErr(kind Kind, p *request.Plan, err error) error {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind == kind {
		return err
	}

	return &Error{
		Kind: kind,
		Op:   urlErrorOp(p.Method),
		URL:  p.URL,
		Err:  err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
