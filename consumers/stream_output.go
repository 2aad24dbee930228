// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sampleflow/sampleflow"
)

// StreamOutput writes every consumed sample to an output sink, one
// sample per line with elements separated by single spaces. The mutex
// keeps lines from concurrent producers from interleaving; write errors
// are not reported sample-by-sample and can be checked by the owner of
// the sink.
type StreamOutput[S sampleflow.Sample[S]] struct {
	mu struct {
		sync.Mutex
		w io.Writer
	}
}

var _ sampleflow.Consumer[sampleflow.Scalar] = (*StreamOutput[sampleflow.Scalar])(nil)

// NewStreamOutput returns a consumer writing to w.
func NewStreamOutput[S sampleflow.Sample[S]](w io.Writer) *StreamOutput[S] {
	s := &StreamOutput[S]{}
	s.mu.w = w
	return s
}

// Consume writes one sample.
func (s *StreamOutput[S]) Consume(sample S, _ sampleflow.AuxiliaryData) {
	var sb strings.Builder
	for i, n := 0, sample.Len(); i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", sample.At(i))
	}
	sb.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.mu.w, sb.String())
}
