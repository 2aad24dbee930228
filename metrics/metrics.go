// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package metrics exposes estimator snapshots as Prometheus collectors,
// so a long-running analysis can be watched while the chain is still
// producing samples.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/consumers"
)

// HistogramCollector adapts a consumers.Histogram snapshot to a
// Prometheus histogram metric. Bucket upper bounds are the bins' right
// edges; samples the estimator dropped as out-of-range are absent from
// the +Inf bucket as well. Prometheus requires a sample sum, which the
// binned representation does not retain; it is approximated from the
// bin midpoints.
type HistogramCollector struct {
	h    *consumers.Histogram
	desc *prometheus.Desc
}

var _ prometheus.Collector = (*HistogramCollector)(nil)

// NewHistogramCollector returns a collector publishing h under the
// given metric name.
func NewHistogramCollector(h *consumers.Histogram, name, help string) *HistogramCollector {
	return &HistogramCollector{
		h:    h,
		desc: prometheus.NewDesc(name, help, nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *HistogramCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *HistogramCollector) Collect(ch chan<- prometheus.Metric) {
	bins := c.h.Get()
	buckets := make(map[float64]uint64, len(bins))
	var count uint64
	var sum float64
	for _, bin := range bins {
		count += bin.Count
		sum += float64(bin.Count) * (bin.Left + bin.Right) / 2
		buckets[bin.Right] = count
	}
	ch <- prometheus.MustNewConstHistogram(c.desc, count, sum, buckets)
}

// NewMeanGauge returns a gauge reporting the current running mean of a
// scalar stream.
func NewMeanGauge(m *consumers.MeanValue[sampleflow.Scalar], name, help string) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, func() float64 {
		return float64(m.Get())
	})
}

// NewSampleCountFunc returns a counter-valued metric reporting how many
// samples an estimator has consumed.
func NewSampleCountFunc(name, help string, count func() uint64) prometheus.CounterFunc {
	return prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, func() float64 {
		return float64(count())
	})
}
