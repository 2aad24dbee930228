// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package filters implements transformation stages that sit between a
// sample producer and the estimators in the consumers package. A filter
// is a consumer that re-emits a transformed (or thinned) stream through
// an embedded sampleflow.Producer; downstream consumers connect to the
// filter exactly as they would to the original producer.
package filters

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/internal/invariants"
)

// TakeEveryNth forwards every n'th sample it consumes, starting with
// the n'th, and drops the rest. With n == 1 it forwards everything.
// Thinning is the usual way to cut serial correlation out of a chain
// before feeding estimators that assume near-independent samples.
type TakeEveryNth[S any] struct {
	sampleflow.Producer[S]
	n uint64

	mu struct {
		sync.Mutex
		counter uint64
	}
}

var _ sampleflow.Consumer[sampleflow.Scalar] = (*TakeEveryNth[sampleflow.Scalar])(nil)

// NewTakeEveryNth returns a filter forwarding every n'th sample. It
// errs if n < 1.
func NewTakeEveryNth[S any](n int) (*TakeEveryNth[S], error) {
	if n < 1 {
		return nil, errors.Errorf("take every nth: n must be at least 1 (got %d)", n)
	}
	return &TakeEveryNth[S]{n: uint64(n)}, nil
}

// Consume counts one sample and forwards it if it is the n'th since the
// last forwarded one. The forward happens outside the counter lock so a
// slow consumer never serializes unrelated producers against the
// counter.
func (f *TakeEveryNth[S]) Consume(sample S, aux sampleflow.AuxiliaryData) {
	f.mu.Lock()
	f.mu.counter++
	forward := f.mu.counter%f.n == 0
	f.mu.Unlock()
	if forward {
		f.Emit(sample, aux)
	}
}

// ComponentSplitter consumes vector samples and emits a single scalar
// component of each, selected at construction. Scalar-only consumers
// such as consumers.Histogram are connected to vector streams through
// one splitter per component of interest.
type ComponentSplitter struct {
	sampleflow.Producer[sampleflow.Scalar]
	component int
}

var _ sampleflow.Consumer[sampleflow.Vector] = (*ComponentSplitter)(nil)

// NewComponentSplitter returns a filter extracting the given component.
// It errs if component is negative; whether the index is within the
// stream's dimension is only known once samples arrive and is a
// precondition on the stream.
func NewComponentSplitter(component int) (*ComponentSplitter, error) {
	if component < 0 {
		return nil, errors.Errorf("component splitter: component must be non-negative (got %d)", component)
	}
	return &ComponentSplitter{component: component}, nil
}

// Consume emits the selected component of one sample.
func (f *ComponentSplitter) Consume(sample sampleflow.Vector, aux sampleflow.AuxiliaryData) {
	invariants.CheckBounds(f.component, sample.Len())
	f.Emit(sampleflow.Scalar(sample.At(f.component)), aux)
}
