// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/internal/invariants"
	"github.com/sampleflow/sampleflow/internal/ringbuf"
)

// SpuriousAutocovariance maintains, for each lag l = 1..k, a running
// estimate of a covariance-like quantity between a sample and the
// sample seen l steps earlier:
//
//	gamma(l) = (1/n) sum_{t=1}^{n-l} (x_{t+l} - mean) . (x_t - mean)
//
// Expanding the product splits the sum into three incrementally
// maintainable terms,
//
//	gamma(l) = alpha(l) - mean . beta(l) + ((n-1)/n) (mean . mean)
//
// where alpha(l) is the running mean of the inner product x_{t+l} . x_t
// and beta(l) the running mean of the elementwise sum x_{t+l} + x_t.
// Each of alpha, beta and mean is updated with the MeanValue recurrence
// on every sample, using the total sample count as the shared
// denominator.
//
// The estimate is deliberately called spurious: the per-lag terms see
// fewer than n observations while the recurrence divides by n, so the
// result carries a known bias and is not a true autocovariance. The
// recurrence is preserved exactly as documented; downstream analyses
// target this specific estimator.
//
// The last k samples are kept in a fixed-capacity ring buffer, ordered
// most recent first; nothing older is retained.
type SpuriousAutocovariance[S sampleflow.Sample[S]] struct {
	maxLag int

	mu struct {
		sync.Mutex
		n       uint64
		dim     int
		mean    S
		alpha   []float64
		beta    []S
		history *ringbuf.Buffer[S]
		cur     []float64
	}
}

var _ sampleflow.Consumer[sampleflow.Vector] = (*SpuriousAutocovariance[sampleflow.Vector])(nil)

// NewSpuriousAutocovariance returns an estimator tracking lags 1..maxLag.
// It errs if maxLag < 1.
func NewSpuriousAutocovariance[S sampleflow.Sample[S]](maxLag int) (*SpuriousAutocovariance[S], error) {
	if maxLag < 1 {
		return nil, errors.Errorf("autocovariance: maxLag must be at least 1 (got %d)", maxLag)
	}
	a := &SpuriousAutocovariance[S]{maxLag: maxLag}
	return a, nil
}

// MaxLag returns the number of lags tracked.
func (a *SpuriousAutocovariance[S]) MaxLag() int { return a.maxLag }

// Consume folds one sample into the per-lag running terms. The sample
// dimension is fixed by the first sample of the stream.
func (a *SpuriousAutocovariance[S]) Consume(sample S, _ sampleflow.AuxiliaryData) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mu.n == 0 {
		a.mu.dim = sample.Len()
		a.mu.alpha = make([]float64, a.maxLag)
		a.mu.beta = make([]S, a.maxLag)
		zero := sample.Sub(sample)
		for i := range a.mu.beta {
			a.mu.beta[i] = zero.Clone()
		}
		a.mu.cur = make([]float64, a.maxLag)
		a.mu.history = ringbuf.New[S](a.maxLag)
		a.mu.history.Push(sample.Clone())
		a.mu.mean = sample.Clone()
		a.mu.n = 1
		return
	}
	invariants.CheckSameDim(sample.Len(), a.mu.dim)

	a.mu.n++
	n := float64(a.mu.n)

	// Every entry currently in the history buffer has a defined lag;
	// before the window fills, that is fewer than maxLag entries.
	for i := 0; i < a.mu.history.Len(); i++ {
		past := a.mu.history.At(i)
		a.mu.alpha[i] += (sampleflow.Dot(sample, past) - a.mu.alpha[i]) / n
		a.mu.beta[i] = a.mu.beta[i].Add(sample.Add(past).Sub(a.mu.beta[i]).DivScalar(n))
	}

	a.mu.history.Push(sample.Clone())
	a.mu.mean = a.mu.mean.Add(sample.Sub(a.mu.mean).DivScalar(n))

	// The derived per-lag estimate is well-defined only once every
	// tracked lag has been observed at least once, i.e. from the
	// (maxLag+1)'th sample on.
	if a.mu.n > uint64(a.maxLag) {
		meanSq := sampleflow.Dot(a.mu.mean, a.mu.mean)
		for i := 0; i < a.maxLag; i++ {
			a.mu.cur[i] = a.mu.alpha[i] -
				sampleflow.Dot(a.mu.mean, a.mu.beta[i]) +
				(n-1)/n*meanSq
		}
	}
}

// Get returns the current per-lag estimates: element i is the lag-(i+1)
// statistic. Before maxLag+1 samples have been consumed the result is
// all zeros. The returned slice is an independent copy.
func (a *SpuriousAutocovariance[S]) Get() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]float64, a.maxLag)
	copy(result, a.mu.cur)
	return result
}

// Count returns the number of samples consumed so far.
func (a *SpuriousAutocovariance[S]) Count() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mu.n
}

// String implements fmt.Stringer.
func (a *SpuriousAutocovariance[S]) String() string {
	return redact.StringWithoutMarkers(a)
}

// SafeFormat implements redact.SafeFormatter.
func (a *SpuriousAutocovariance[S]) SafeFormat(w redact.SafePrinter, _ rune) {
	a.mu.Lock()
	n, dim := a.mu.n, a.mu.dim
	a.mu.Unlock()
	w.Printf("autocovariance maxLag=%v dim=%v, %v samples",
		redact.SafeInt(int64(a.maxLag)), redact.SafeInt(int64(dim)), redact.SafeUint(n))
}
