// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package sampleflow

import "sync"

// AuxiliaryData carries optional per-sample metadata alongside a sample,
// for example the acceptance ratio the producer observed when it
// generated the sample. The estimators in the consumers subpackage do
// not know what to do with any such data and ignore it.
type AuxiliaryData map[string]any

// Consumer receives samples one at a time. Implementations must be safe
// for concurrent Consume calls from multiple goroutines.
type Consumer[S any] interface {
	Consume(sample S, aux AuxiliaryData)
}

// Producer fans out samples to connected consumers. Concrete producers
// embed it and call Emit for every sample they generate.
//
// The zero value is ready to use.
type Producer[S any] struct {
	mu struct {
		sync.Mutex
		consumers []Consumer[S]
	}
}

// Connect registers a consumer to receive every sample emitted from now
// on.
func (p *Producer[S]) Connect(c Consumer[S]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mu.consumers = append(p.mu.consumers, c)
}

// Emit delivers one sample to every connected consumer. The consumer
// list is snapshotted first so that a slow consumer never holds up a
// concurrent Connect; delivery itself happens outside the lock.
func (p *Producer[S]) Emit(sample S, aux AuxiliaryData) {
	p.mu.Lock()
	consumers := p.mu.consumers
	p.mu.Unlock()
	for _, c := range consumers {
		c.Consume(sample, aux)
	}
}
