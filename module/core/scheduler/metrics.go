/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package scheduler

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "txscheduler"

type metrics struct {
	scheduleTime  prometheus.Histogram
	executeTime   prometheus.Histogram
	batchesPerRun prometheus.Histogram
	jobsPerBatch  prometheus.Histogram
	txs           *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		scheduleTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "schedule_seconds",
			Help:      "time spent resolving, batching and grouping one block",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		executeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "execute_seconds",
			Help:      "time spent executing the batches of one block",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		batchesPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "batches_per_block",
			Help:      "number of batches of one block",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		jobsPerBatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_per_batch",
			Help:      "number of concurrent jobs of one batch",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "txs_total",
			Help:      "transactions by outcome",
		}, []string{"outcome"}),
	}
	if reg != nil {
		m.scheduleTime = register(reg, m.scheduleTime)
		m.executeTime = register(reg, m.executeTime)
		m.batchesPerRun = register(reg, m.batchesPerRun)
		m.jobsPerBatch = register(reg, m.jobsPerBatch)
		m.txs = register(reg, m.txs)
	}
	return m
}

// register registers c, or returns the collector registered before under the same name
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	return c
}
