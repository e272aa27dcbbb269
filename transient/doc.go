// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from request execution into
// timeouts, cancellations and connection-level failures. This is handy
// for telling apart the ways a call can be aborted, and for bucketing
// error metrics.
//
// Package transient depends only on the standard library, so it
// doesn't bring any significant dependencies when imported as a
// standalone package.
package transient
