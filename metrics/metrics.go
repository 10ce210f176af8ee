// Package metrics exposes the module's ambient prometheus instrumentation:
// a flush-duration histogram, a per-Operation enqueue counter, and a
// chunk-assignment gauge. Grounded on the teacher's prometheus/client_golang
// dependency.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FlushDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "openpmd",
		Subsystem: "flush",
		Name:      "duration_seconds",
		Help:      "Duration of Series.Flush calls by flush level.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"level", "backend"})

	TasksEnqueued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openpmd",
		Subsystem: "iotask",
		Name:      "enqueued_total",
		Help:      "Number of IOTasks enqueued, by operation.",
	}, []string{"operation"})

	ChunksAssigned = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "openpmd",
		Subsystem: "chunkdist",
		Name:      "assigned_chunks",
		Help:      "Chunks assigned to a reader rank by the last planning pass.",
	}, []string{"strategy", "rank"})
)

// Registry is a dedicated registry rather than the global default one, so
// embedding this module in a larger process never collides with its
// metric names.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(FlushDuration, TasksEnqueued, ChunksAssigned)
}
