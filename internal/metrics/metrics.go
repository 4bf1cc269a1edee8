// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics is the Metrics ambient component (SPEC_FULL.md §4.9),
// grounded on the teacher's api/metrics.Metrics/NewMetrics and
// poll.NewSet(factory, log, registerer) registerer-injection shape.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is a prometheus registry that can both register and gather,
// matching the teacher's api/metrics.Registry alias.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// NewRegistry creates a new prometheus registry, exactly as the teacher's
// api/metrics.NewRegistry does.
func NewRegistry() Registry {
	return prometheus.NewRegistry()
}

// Metrics is the set of coordinator-observable counters and a round-
// duration histogram.
type Metrics struct {
	TicksCompleted     prometheus.Counter
	VehiclesRegistered prometheus.Counter
	PushFailures       prometheus.Counter
	ProtocolViolations prometheus.Counter
	RoundDuration      prometheus.Histogram
}

// New creates and registers the coordinator's metrics under namespace.
func New(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		TicksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_completed_total",
			Help:      "Number of tick rounds the coordinator has completed.",
		}),
		VehiclesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vehicles_registered_total",
			Help:      "Number of vehicles assigned an index this scenario.",
		}),
		PushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "push_failures_total",
			Help:      "Number of outbound PushTick calls that failed.",
		}),
		ProtocolViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_violations_total",
			Help:      "Number of fatal protocol violations observed.",
		}),
		RoundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_duration_seconds",
			Help:      "Wall-clock duration of a tick round, fan-out to fan-in.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{
		m.TicksCompleted,
		m.VehiclesRegistered,
		m.PushFailures,
		m.ProtocolViolations,
		m.RoundDuration,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
