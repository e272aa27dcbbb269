// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/lesha2r/fluid-fetch/request"
)

// A Policy defines a timeout policy which may be plugged into the
// client (fluidfetch.Client) to direct how long the execution of each
// plan may take.
//
// A zero or negative return value means the execution has no timeout
// and lasts until the transport settles or the plan is cancelled.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to apply to the execution of plan p.
	//
	// Parameter p is the plan as returned by the request middleware
	// chain, so middleware may adjust p.Timeout before the policy sees
	// it.
	Timeout(p *request.Plan) time.Duration
}

// DefaultPolicy is the default timeout policy. It honors the plan's own
// Timeout and applies no timeout when the plan has none.
var DefaultPolicy Policy = Fallback(0)

// Infinite is a built-in timeout policy which never times out, even if
// the plan asks for a timeout.
var Infinite Policy = Fixed(0)

// Fixed constructs a timeout policy that ignores the plan's Timeout and
// always returns d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

// Fallback constructs a timeout policy that returns the plan's Timeout
// when it is positive, and d otherwise.
//
// Use Fallback to give every request a client-wide timeout which
// individual requests can override:
//
//	client.TimeoutPolicy = timeout.Fallback(30 * time.Second)
func Fallback(d time.Duration) Policy {
	return fallback(d)
}

// Capped constructs a timeout policy that returns the plan's Timeout
// but never more than max. A plan without a timeout gets max.
func Capped(max time.Duration) Policy {
	return capped(max)
}

type fixed time.Duration

func (f fixed) Timeout(_ *request.Plan) time.Duration {
	return time.Duration(f)
}

type fallback time.Duration

func (f fallback) Timeout(p *request.Plan) time.Duration {
	if p != nil && p.Timeout > 0 {
		return p.Timeout
	}

	return time.Duration(f)
}

type capped time.Duration

func (c capped) Timeout(p *request.Plan) time.Duration {
	max := time.Duration(c)
	if p == nil || p.Timeout <= 0 {
		return max
	}
	if max > 0 && p.Timeout > max {
		return max
	}

	return p.Timeout
}
