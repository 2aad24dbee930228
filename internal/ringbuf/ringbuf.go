// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package ringbuf provides a fixed-capacity, most-recent-first ring
// buffer. It backs the windowed estimators, which need the last k
// samples of a stream and nothing older.
package ringbuf

import "github.com/sampleflow/sampleflow/internal/invariants"

// Buffer holds up to a fixed number of entries. Pushing into a full
// buffer drops the oldest entry. Entries are addressed most-recent
// first: At(0) is the last value pushed, At(1) the one before it.
//
// Buffer performs no locking; the owning estimator serializes access.
type Buffer[T any] struct {
	entries []T
	head    int
	n       int
}

// New returns a buffer with the given capacity, which must be at least
// 1.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{entries: make([]T, capacity)}
}

// Push inserts v as the most recent entry, evicting the oldest entry if
// the buffer is at capacity.
func (b *Buffer[T]) Push(v T) {
	b.head--
	if b.head < 0 {
		b.head = len(b.entries) - 1
	}
	b.entries[b.head] = v
	if b.n < len(b.entries) {
		b.n++
	}
}

// At returns the i'th most recent entry; At(0) is the entry pushed
// last. i must be in [0, Len()).
func (b *Buffer[T]) At(i int) T {
	invariants.CheckBounds(i, b.n)
	return b.entries[(b.head+i)%len(b.entries)]
}

// Len returns the number of entries currently held.
func (b *Buffer[T]) Len() int { return b.n }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.entries) }
