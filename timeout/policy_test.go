// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"testing"
	"time"

	"github.com/lesha2r/fluid-fetch/request"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, time.Duration(0), DefaultPolicy.Timeout(&request.Plan{}))
	assert.Equal(t, 10*time.Millisecond, DefaultPolicy.Timeout(&request.Plan{Timeout: 10 * time.Millisecond}))
}

func TestInfinite(t *testing.T) {
	assert.Equal(t, time.Duration(0), Infinite.Timeout(&request.Plan{}))
	assert.Equal(t, time.Duration(0), Infinite.Timeout(&request.Plan{Timeout: time.Second}))
}

func TestFixed(t *testing.T) {
	p := Fixed(33 * time.Hour)
	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Plan{}))
	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Plan{Timeout: time.Second}))
	assert.Equal(t, 33*time.Hour, p.Timeout(nil))
}

func TestFallback(t *testing.T) {
	p := Fallback(5 * time.Second)
	assert.Equal(t, 5*time.Second, p.Timeout(&request.Plan{}))
	assert.Equal(t, 5*time.Second, p.Timeout(&request.Plan{Timeout: -1}))
	assert.Equal(t, time.Second, p.Timeout(&request.Plan{Timeout: time.Second}))
	assert.Equal(t, time.Minute, p.Timeout(&request.Plan{Timeout: time.Minute}))
	assert.Equal(t, 5*time.Second, p.Timeout(nil))
}

func TestCapped(t *testing.T) {
	testCases := []struct {
		name string
		max  time.Duration
		plan time.Duration
		want time.Duration
	}{
		{"no plan timeout", time.Second, 0, time.Second},
		{"below cap", time.Second, 10 * time.Millisecond, 10 * time.Millisecond},
		{"at cap", time.Second, time.Second, time.Second},
		{"above cap", time.Second, time.Minute, time.Second},
		{"no cap", 0, time.Minute, time.Minute},
		{"neither", 0, 0, 0},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			p := Capped(testCase.max)
			assert.Equal(t, testCase.want, p.Timeout(&request.Plan{Timeout: testCase.plan}))
		})
	}
}
