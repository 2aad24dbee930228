// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package producers

import (
	"strings"
	"testing"

	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/consumers"
	"github.com/stretchr/testify/require"
)

func TestStreamReader(t *testing.T) {
	input := "1 2\n\n3 4\n5 6\n"
	p := NewStreamReader(strings.NewReader(input))

	var mean consumers.MeanValue[sampleflow.Vector]
	var last consumers.LastSample[sampleflow.Vector]
	p.Connect(&mean)
	p.Connect(&last)

	n, err := p.Run()
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)
	require.Equal(t, sampleflow.Vector{5, 6}, last.Get())
	require.Equal(t, sampleflow.Vector{3, 4}, mean.Get())
}

func TestStreamReaderBadFloat(t *testing.T) {
	p := NewStreamReader(strings.NewReader("1 2\n3 oops\n"))
	n, err := p.Run()
	require.Error(t, err)
	require.ErrorContains(t, err, "line 2")
	require.Equal(t, uint64(1), n)
}

func TestStreamReaderDimensionChange(t *testing.T) {
	p := NewStreamReader(strings.NewReader("1 2\n3 4 5\n"))
	_, err := p.Run()
	require.Error(t, err)
	require.ErrorContains(t, err, "stream dimension is 2")
}

// A stream written by consumers.StreamOutput round-trips through the
// reader.
func TestStreamReaderRoundTrip(t *testing.T) {
	var sb strings.Builder
	out := consumers.NewStreamOutput[sampleflow.Vector](&sb)
	out.Consume(sampleflow.Vector{1.5, -2}, nil)
	out.Consume(sampleflow.Vector{0, 3.25}, nil)

	p := NewStreamReader(strings.NewReader(sb.String()))
	var last consumers.LastSample[sampleflow.Vector]
	p.Connect(&last)
	n, err := p.Run()
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)
	require.Equal(t, sampleflow.Vector{0, 3.25}, last.Get())
}
