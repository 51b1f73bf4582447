// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daq

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	buffers  prometheus.Counter
	footers  prometheus.Counter
	rejected *prometheus.CounterVec // by error kind
	dropped  prometheus.Counter
	queue    prometheus.Gauge
	latency  prometheus.Histogram
}

func newMetrics(name string) *metrics {
	labels := prometheus.Labels{"process": name}
	return &metrics{
		buffers: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ats_buffers_decoded_total",
			Help:        "Acquisition buffers whose footers were decoded.",
			ConstLabels: labels,
		}),
		footers: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ats_footers_decoded_total",
			Help:        "Record footers decoded.",
			ConstLabels: labels,
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ats_buffers_rejected_total",
			Help:        "Acquisition buffers that could not be decoded.",
			ConstLabels: labels,
		}, []string{"kind"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ats_outputs_dropped_total",
			Help:        "Decoded buffers lost because the output queue was full.",
			ConstLabels: labels,
		}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ats_output_queue_length",
			Help:        "Decoded buffers waiting to be published.",
			ConstLabels: labels,
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "ats_decode_latency_seconds",
			Help:        "Time spent decoding the footers of a buffer.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.buffers, m.footers, m.rejected, m.dropped, m.queue, m.latency,
	}
}

func (m *metrics) observe(start time.Time) {
	m.latency.Observe(time.Since(start).Seconds())
}
