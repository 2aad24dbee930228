// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package sampleflow

// Sample is the capability an input type must provide in order to be
// processed by the estimators in this module: value-semantics
// arithmetic plus elementwise access. Implementations must never mutate
// the receiver or an argument; every operation returns a fresh value.
//
// Non-finite element values (NaN, ±Inf) are not validated anywhere in
// this module and propagate into derived statistics; keeping them out
// of the stream is the caller's responsibility.
type Sample[S any] interface {
	// Add returns the elementwise sum of the receiver and other.
	Add(other S) S
	// Sub returns the elementwise difference of the receiver and other.
	Sub(other S) S
	// DivScalar returns the receiver with every element divided by d.
	DivScalar(d float64) S
	// Len returns the number of elements (1 for scalars).
	Len() int
	// At returns the i'th element.
	At(i int) float64
	// Clone returns an independent copy of the receiver. Estimator
	// snapshots and retained history must never alias caller-owned
	// storage, which for slice-backed implementations requires an
	// explicit copy.
	Clone() S
}

// Scalar is a one-dimensional sample.
type Scalar float64

// Add implements Sample.
func (s Scalar) Add(other Scalar) Scalar { return s + other }

// Sub implements Sample.
func (s Scalar) Sub(other Scalar) Scalar { return s - other }

// DivScalar implements Sample.
func (s Scalar) DivScalar(d float64) Scalar { return Scalar(float64(s) / d) }

// Len implements Sample.
func (s Scalar) Len() int { return 1 }

// At implements Sample.
func (s Scalar) At(i int) float64 { return float64(s) }

// Clone implements Sample.
func (s Scalar) Clone() Scalar { return s }

// Vector is a fixed-dimension sample. All estimator update rules assume
// that every sample in a stream has the same dimension as the first.
type Vector []float64

// Add implements Sample.
func (v Vector) Add(other Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] + other[i]
	}
	return r
}

// Sub implements Sample.
func (v Vector) Sub(other Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] - other[i]
	}
	return r
}

// DivScalar implements Sample.
func (v Vector) DivScalar(d float64) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] / d
	}
	return r
}

// Len implements Sample.
func (v Vector) Len() int { return len(v) }

// At implements Sample.
func (v Vector) At(i int) float64 { return v[i] }

// Clone implements Sample.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	r := make(Vector, len(v))
	copy(r, v)
	return r
}

// Dot returns the inner product of two samples of equal dimension.
func Dot[S Sample[S]](a, b S) float64 {
	var sum float64
	for i, n := 0, a.Len(); i < n; i++ {
		sum += a.At(i) * b.At(i)
	}
	return sum
}
