// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package middleware provides Chain, an ordered list of transform and
// recover handler pairs applied to a single value. The fluidfetch
// client keeps one chain for outgoing request plans and one for
// incoming responses.
//
// Register a transform, optionally paired with a function that recovers
// from its failures:
//
//	id := client.Middleware.Request.Register(
//		func(ctx context.Context, p *request.Plan) (*request.Plan, error) {
//			p.Header.Set("Authorization", "Bearer "+token)
//			return p, nil
//		}, nil)
//	...
//	client.Middleware.Request.Remove(id)
package middleware
