// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics records Prometheus metrics about plan executions by
// installing itself as an event handler in a fluidfetch.Client.
//
//	reg := prometheus.NewRegistry()
//	handlers := &fluidfetch.HandlerGroup{}
//	metrics.NewCollector(reg).Install(handlers)
//	client := &fluidfetch.Client{Handlers: handlers}
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	fluidfetch "github.com/lesha2r/fluid-fetch"
	"github.com/lesha2r/fluid-fetch/request"
	"github.com/lesha2r/fluid-fetch/transient"
)

const namespace = "fluidfetch"

// Collector records request, cache and de-duplication metrics. It is
// safe for concurrent use, and a nil *Collector records nothing.
type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	superseded       prometheus.Counter
	timeouts         prometheus.Counter
}

// NewCollector creates a collector whose metrics are registered with
// reg. It panics if any metric is already registered.
func NewCollector(reg prometheus.Registerer) *Collector {
	return &Collector{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of plan executions by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of plan executions in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		requestsInFlight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of plan executions currently in flight",
			},
		),
		cacheHits: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of responses served from the cache",
			},
		),
		cacheMisses: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cacheable plans not found in the cache",
			},
		),
		superseded: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "superseded_total",
				Help:      "Total number of in-flight executions cancelled by a newer one",
			},
		),
		timeouts: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "timeouts_total",
				Help:      "Total number of executions that timed out",
			},
		),
	}
}

// Install puts the collector at the front of the event handler chains
// it needs in g, so its counts are taken before other handlers run.
// Install it before the group is used by a client.
func (c *Collector) Install(g *fluidfetch.HandlerGroup) {
	for _, evt := range []fluidfetch.Event{
		fluidfetch.BeforeExecutionStart,
		fluidfetch.CacheHit,
		fluidfetch.CacheMiss,
		fluidfetch.Supersede,
		fluidfetch.AfterTimeout,
		fluidfetch.AfterExecutionEnd,
	} {
		g.PushFront(evt, c)
	}
}

// Handle records the metrics for a single event.
func (c *Collector) Handle(evt fluidfetch.Event, e *request.Execution) {
	if c == nil {
		return
	}

	switch evt {
	case fluidfetch.BeforeExecutionStart:
		c.requestsInFlight.Inc()
	case fluidfetch.CacheHit:
		c.cacheHits.Inc()
	case fluidfetch.CacheMiss:
		c.cacheMisses.Inc()
	case fluidfetch.Supersede:
		c.superseded.Inc()
	case fluidfetch.AfterTimeout:
		c.timeouts.Inc()
	case fluidfetch.AfterExecutionEnd:
		c.requestsInFlight.Dec()
		m := method(e)
		c.requestsTotal.WithLabelValues(m, Outcome(e.Err)).Inc()
		c.requestDuration.WithLabelValues(m).Observe(e.Duration().Seconds())
	}
}

// Outcome returns the outcome label for an execution ending with err:
// "success" for a nil error, the transient category name when err falls
// into one, and otherwise the kind of the *fluidfetch.Error.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}

	if cat := transient.Categorize(err); cat != transient.Not {
		return cat.String()
	}

	var fe *fluidfetch.Error
	if errors.As(err, &fe) {
		return fe.Kind.String()
	}

	return "error"
}

func method(e *request.Execution) string {
	if e.Plan == nil || e.Plan.Method == "" {
		return "GET"
	}
	return e.Plan.Method
}
