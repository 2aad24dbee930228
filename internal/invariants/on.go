// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

//go:build invariants || race

package invariants

import "fmt"

// Enabled is true if we were built with the "invariants" or "race"
// build tags.
const Enabled = true

// CheckBounds panics if the index is not in the range [0, n).
func CheckBounds[T Integer](i T, n T) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("index %d out of bounds [0, %d)", i, n))
	}
}

// CheckSameDim panics if the two dimensions differ. Used by the
// vector-valued estimators, which read the sample dimension from the
// first sample of a stream and require every later sample to match.
func CheckSameDim(got, want int) {
	if got != want {
		panic(fmt.Sprintf("sample dimension %d, stream dimension %d", got, want))
	}
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
