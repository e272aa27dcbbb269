// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fluidfetch

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality, such as metrics.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// plan execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil and has its ID, Plan and Start fields set. Request
	// middleware has not yet run.
	BeforeExecutionStart Event = iota
	// CacheHit identifies the event that occurs when a plan whose cache
	// directive is enabled is served from the client's response cache.
	//
	// When Client fires CacheHit, the execution's Response field is set
	// to the caller's copy of the cached response. No HTTP request is
	// sent, response middleware does not run, and the next event is
	// AfterExecutionEnd.
	CacheHit
	// CacheMiss identifies the event that occurs when a plan whose
	// cache directive is enabled is not found in the response cache.
	CacheMiss
	// Supersede identifies the event that occurs when the execution
	// cancels an older in-flight execution with the same fingerprint.
	//
	// When Client fires Supersede, the older execution has already
	// been cancelled with cause ErrSuperseded, and the execution's
	// Superseded field is true.
	Supersede
	// BeforeAttempt identifies the event that occurs before the HTTP
	// request is handed to the HTTPDoer.
	//
	// When Client fires BeforeAttempt, the execution's Request field is
	// set to the HTTP request that WILL BE sent after all BeforeAttempt
	// handlers have finished. Handlers may modify the request, but
	// should clone the URL and Header before changing them.
	BeforeAttempt
	// AfterTimeout identifies the event that occurs after the HTTP
	// request failed because the execution's timeout elapsed.
	//
	// When Client fires AfterTimeout, the execution's Err field is set
	// to the timeout error. AfterAttempt always follows.
	AfterTimeout
	// AfterAttempt identifies the event that occurs after the HTTP
	// request concludes, regardless of whether it concluded
	// successfully or not.
	//
	// When Client fires AfterAttempt, exactly one of the execution's
	// Response and Err fields is non-nil. Response middleware has not
	// yet run.
	AfterAttempt
	// AfterExecutionEnd identifies the event that occurs after the plan
	// execution ends, whatever the outcome.
	//
	// When Client fires AfterExecutionEnd, the execution's End field is
	// set, and its Response and Err fields hold the values Client.Do
	// returns.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"CacheHit",
	"CacheMiss",
	"Supersede",
	"BeforeAttempt",
	"AfterTimeout",
	"AfterAttempt",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// HTTP request plan execution by Client, in the order in which
// they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		CacheHit,
		CacheMiss,
		Supersede,
		BeforeAttempt,
		AfterTimeout,
		AfterAttempt,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
