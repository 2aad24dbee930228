// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"sync"

	"github.com/sampleflow/sampleflow"
)

// MeanValue maintains the running mean of all samples seen so far.
//
// After k samples x_1..x_k the mean is updated as
//
//	mean_1 = x_1
//	mean_k = mean_{k-1} + (x_k - mean_{k-1})/k
//
// rather than as sum/count: the incremental form needs no separate
// running sum and bounds the relative error growth when accumulating
// arbitrarily many values of possibly large magnitude.
//
// The zero value is ready to use.
type MeanValue[S sampleflow.Sample[S]] struct {
	mu struct {
		sync.Mutex
		n    uint64
		mean S
	}
}

var _ sampleflow.Consumer[sampleflow.Scalar] = (*MeanValue[sampleflow.Scalar])(nil)

// Consume folds one sample into the running mean.
func (m *MeanValue[S]) Consume(sample S, _ sampleflow.AuxiliaryData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mu.n == 0 {
		// The update recurrence divides into the previous mean, which
		// does not exist yet; assign directly.
		m.mu.mean = sample.Clone()
		m.mu.n = 1
		return
	}
	m.mu.n++
	m.mu.mean = m.mu.mean.Add(sample.Sub(m.mu.mean).DivScalar(float64(m.mu.n)))
}

// Get returns the mean of the samples seen so far, or the zero value of
// S if no sample has been consumed. The result is an independent copy;
// later updates do not modify it.
func (m *MeanValue[S]) Get() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mu.n == 0 {
		var zero S
		return zero
	}
	return m.mu.mean.Clone()
}

// Count returns the number of samples consumed so far.
func (m *MeanValue[S]) Count() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mu.n
}
