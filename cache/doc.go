// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cache provides Store, a minimal time-to-live key/value store
// with lazy eviction. The fluidfetch client keeps one Store per client
// to remember responses for requests that opt in to caching.
package cache
