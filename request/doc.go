// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes a request),
Response (a fully buffered response) and Execution (describes a Plan
execution).

A Plan is a declarative description of one logical HTTP request:
method, target URL, headers, scalar query parameters, an optional body,
a cache directive and a timeout. Unlike an http.Request, a Plan keeps
its query parameters and body in structured form until the executing
client turns it into an http.Request, which lets request middleware
inspect and change them.

	p, err := request.NewPlan("GET", "/users")
	...
	p.Params["page"] = 2
	p.Cache = request.CacheDirective{Enabled: true}
	resp, err := client.Do(p)

Each Plan owns a cancellation Handle derived from the context given to
NewPlanWithContext. Cancelling the handle aborts the plan's execution:

	p, err := request.NewPlanWithContext(ctx, "POST", "/upload")
	...
	p.Cancel(nil)

Two plans with the same method, URL and query parameters have the same
Fingerprint, regardless of their headers and bodies. The executing
client uses the fingerprint as the key for its response cache and for
de-duplicating in-flight requests.

Execution is the type handed to the client's event handlers. You will
typically not allocate Execution instances yourself.
*/
package request
