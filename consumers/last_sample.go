// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"sync"

	"github.com/sampleflow/sampleflow"
)

// LastSample retains a copy of the most recently consumed sample.
//
// The zero value is ready to use.
type LastSample[S sampleflow.Sample[S]] struct {
	mu struct {
		sync.Mutex
		n    uint64
		last S
	}
}

var _ sampleflow.Consumer[sampleflow.Scalar] = (*LastSample[sampleflow.Scalar])(nil)

// Consume replaces the retained sample.
func (l *LastSample[S]) Consume(sample S, _ sampleflow.AuxiliaryData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mu.last = sample.Clone()
	l.mu.n++
}

// Get returns a copy of the last sample consumed, or the zero value of
// S if no sample has been consumed.
func (l *LastSample[S]) Get() S {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mu.n == 0 {
		var zero S
		return zero
	}
	return l.mu.last.Clone()
}
