// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package fluidfetch provides a lightweight HTTP client with a chainable
request builder, request and response middleware, response caching,
in-flight request de-duplication and per-request timeouts.

Create a Client to begin making requests. Its zero value is ready to
use.

	client := &fluidfetch.Client{BaseURL: "https://api.example.com"}
	resp, err := client.Get("/users").
		Param("page", 2).
		Header("Authorization", "Bearer "+token).
		Timeout(5 * time.Second).
		Await()
	...
	resp, err := client.Post("/users", map[string]string{"name": "ada"}).Await()

Calls are lazy: nothing is sent until the first Await, and every later
Await on the same Call returns the same outcome.

Responses of calls marked with Cache(true) or CacheFor(d) are kept in
the client's cache, and identical cacheable calls are served from it
without touching the network. Two calls are identical when they share
a method, URL and query parameters; headers and bodies are not
compared.

When a call starts while an identical call is still in flight, the
older call is cancelled and fails with an *Error of kind KindCanceled
wrapping ErrSuperseded. The newest call always wins.

Middleware transforms every plan before it is executed, and every
response received from the network:

	client.Middleware.Request.Register(
		func(ctx context.Context, p *request.Plan) (*request.Plan, error) {
			p = p.Clone()
			p.Header.Set("X-Trace", traceID(ctx))
			return p, nil
		}, nil)

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &fluidfetch.Client{
		HTTPDoer: doer,
	}

For a client-wide timeout which individual calls may override, set a
timeout policy using package timeout:

	client := &fluidfetch.Client{
		TimeoutPolicy: timeout.Fallback(10 * time.Second),
	}

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain. Package
metrics uses this to record Prometheus metrics:

	handlers := &fluidfetch.HandlerGroup{}
	handlers.PushBack(fluidfetch.Supersede, fluidfetch.HandlerFunc(
		func(_ fluidfetch.Event, e *request.Execution) {
			log.Printf("superseded older %s", e.Fingerprint)
		}))
	metrics.NewCollector(prometheus.DefaultRegisterer).Install(handlers)
	client := &fluidfetch.Client{
		Handlers: handlers,
	}

To build a client from a YAML file, use package config with
NewFromConfig.
*/
package fluidfetch
