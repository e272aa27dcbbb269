// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the category of a particular error, as reported by
// function Categorize().
//
// The category Not means the error fits none of the other categories:
// it is neither a timeout nor a cancellation nor a recognised
// connection-level failure.
type Category int

const (
	// Not indicates any error which fits no other category.
	Not Category = iota
	// Timeout indicates a client-side timeout.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	// This includes context.DeadlineExceeded.
	Timeout
	// Canceled indicates the call was cancelled before it completed,
	// either explicitly by its owner or because a newer call for the
	// same request superseded it.
	//
	// Function Categorize() will return Canceled if the error is not a
	// Timeout, and the error or any of its wrapped causes has a
	// Canceled() function that reports true or is context.Canceled.
	Canceled
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Function Categorize() will return ConnRefused if the error is
	// neither a Timeout nor Canceled, and the error or any of its
	// wrapped causes is equal to syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// Function Categorize() will return ConnReset if the error is
	// neither a Timeout nor Canceled, and the error or any of its
	// wrapped causes is equal to syscall.ECONNRESET.
	ConnReset
)

var categoryNames = []string{
	"not",
	"timeout",
	"canceled",
	"conn_refused",
	"conn_reset",
}

// String returns a short lower-case name for the category, suitable
// for use as a metric label.
func (cat Category) String() string {
	if cat < 0 || int(cat) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[cat]
}

// Categorize returns the category of the given error. A nil error, and
// an error that fits no specific category, both produce the return
// value Not.
//
// In assessing the category, Categorize looks at wrapped cause errors
// contained within err, not just err itself.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var hasCanceled hasCanceled
	if errors.As(err, &hasCanceled) && hasCanceled.Canceled() {
		return Canceled
	}
	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}

type hasCanceled interface {
	Canceled() bool
}
