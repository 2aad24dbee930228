// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/internal/invariants"
	"github.com/sampleflow/sampleflow/internal/ringbuf"
)

// AverageCosinus maintains, for each lag l = 1..length, the running
// mean of the cosine of the angle between a sample and the sample seen
// l steps earlier:
//
//	cos(x_{t+l}, x_t) = (x_{t+l} . x_t) / (|x_{t+l}| |x_t|)
//
// Each per-lag mean is updated with the MeanValue recurrence; the
// lag-(i+1) term after n total samples divides by n-i, one more than
// the number of pairs that lag has actually seen, so the estimate
// carries a small bias of the same flavor as SpuriousAutocovariance's.
// Like SpuriousAutocovariance it
// keeps only the last `length` samples, in a ring buffer ordered most
// recent first.
//
// Samples of zero magnitude make the cosine undefined; as with other
// non-finite inputs, keeping them out of the stream is the caller's
// responsibility.
type AverageCosinus[S sampleflow.Sample[S]] struct {
	length int

	mu struct {
		sync.Mutex
		n       uint64
		dim     int
		history *ringbuf.Buffer[S]
		cur     []float64
	}
}

var _ sampleflow.Consumer[sampleflow.Vector] = (*AverageCosinus[sampleflow.Vector])(nil)

// NewAverageCosinus returns an estimator tracking lags 1..length. It
// errs if length < 1.
func NewAverageCosinus[S sampleflow.Sample[S]](length int) (*AverageCosinus[S], error) {
	if length < 1 {
		return nil, errors.Errorf("average cosinus: length must be at least 1 (got %d)", length)
	}
	return &AverageCosinus[S]{length: length}, nil
}

// Consume folds one sample into the per-lag running means.
func (a *AverageCosinus[S]) Consume(sample S, _ sampleflow.AuxiliaryData) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mu.n == 0 {
		a.mu.dim = sample.Len()
		a.mu.cur = make([]float64, a.length)
		a.mu.history = ringbuf.New[S](a.length)
		a.mu.history.Push(sample.Clone())
		a.mu.n = 1
		return
	}
	invariants.CheckSameDim(sample.Len(), a.mu.dim)

	a.mu.n++
	n := float64(a.mu.n)
	normSample := math.Sqrt(sampleflow.Dot(sample, sample))
	for i := 0; i < a.mu.history.Len(); i++ {
		past := a.mu.history.At(i)
		cos := sampleflow.Dot(sample, past) /
			(normSample * math.Sqrt(sampleflow.Dot(past, past)))
		a.mu.cur[i] += (cos - a.mu.cur[i]) / (n - float64(i))
	}
	a.mu.history.Push(sample.Clone())
}

// Get returns the current per-lag mean cosines: element i is the
// lag-(i+1) mean. Lags not yet observed are zero. The returned slice is
// an independent copy.
func (a *AverageCosinus[S]) Get() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]float64, a.length)
	copy(result, a.mu.cur)
	return result
}
