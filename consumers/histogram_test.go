// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/sampleflow/sampleflow"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

func TestHistogramConstruction(t *testing.T) {
	_, err := NewHistogram(0, 10, 0, Linear)
	require.Error(t, err)

	_, err = NewHistogram(10, 10, 5, Linear)
	require.Error(t, err)

	_, err = NewHistogram(10, 0, 5, Linear)
	require.Error(t, err)

	// Logarithmic spacing must reject a non-positive left edge at
	// construction, never at consume time.
	_, err = NewHistogram(0, 10, 5, Logarithmic)
	require.Error(t, err)
	_, err = NewHistogram(-1, 10, 5, Logarithmic)
	require.Error(t, err)

	h, err := NewHistogram(0.1, 10, 5, Logarithmic)
	require.NoError(t, err)
	require.NotNil(t, h)
}

func TestHistogramBinning(t *testing.T) {
	h, err := NewHistogram(0, 10, 5, Linear)
	require.NoError(t, err)

	for _, v := range []float64{1, 1, 6, 11, -1} {
		h.Consume(sampleflow.Scalar(v), nil)
	}

	bins := h.Get()
	require.Len(t, bins, 5)
	counts := make([]uint64, len(bins))
	for i, bin := range bins {
		counts[i] = bin.Count
	}
	require.Equal(t, []uint64{2, 0, 0, 1, 0}, counts)
	require.Equal(t, Bin{Left: 6, Right: 8, Count: 1}, bins[3])
}

// A sample exactly equal to the right end of the range falls into the
// last bin rather than producing an out-of-range index.
func TestHistogramMaxValue(t *testing.T) {
	h, err := NewHistogram(0, 10, 5, Linear)
	require.NoError(t, err)

	h.Consume(10, nil)
	bins := h.Get()
	require.Equal(t, uint64(1), bins[4].Count)
}

func TestHistogramLogarithmic(t *testing.T) {
	h, err := NewHistogram(1, 1000, 3, Logarithmic)
	require.NoError(t, err)

	// Edges are exp-spaced: 1, 10, 100, 1000.
	bins := h.Get()
	for i, want := range []float64{1, 10, 100} {
		require.InEpsilon(t, want, bins[i].Left, 1e-9)
		require.InEpsilon(t, want*10, bins[i].Right, 1e-9)
	}

	h.Consume(5, nil)
	h.Consume(50, nil)
	h.Consume(500, nil)
	h.Consume(1000, nil)
	bins = h.Get()
	require.Equal(t, uint64(1), bins[0].Count)
	require.Equal(t, uint64(1), bins[1].Count)
	require.Equal(t, uint64(2), bins[2].Count)
}

// sum(counts) equals the number of in-range samples; every in-range
// sample lands in a bin whose edges contain it (up to edge rounding).
func TestHistogramTotalCount(t *testing.T) {
	for _, scheme := range []SubdivisionScheme{Linear, Logarithmic} {
		t.Run(scheme.String(), func(t *testing.T) {
			h, err := NewHistogram(1, 100, 13, scheme)
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(3))
			var inRange uint64
			for i := 0; i < 10000; i++ {
				v := rng.Float64()*200 - 50
				if v >= 1 && v <= 100 {
					inRange++
				}
				h.Consume(sampleflow.Scalar(v), nil)
			}

			var total uint64
			for _, bin := range h.Get() {
				total += bin.Count
			}
			require.Equal(t, inRange, total)
		})
	}
}

func TestHistogramConcurrent(t *testing.T) {
	h, err := NewHistogram(0, 1, 10, Linear)
	require.NoError(t, err)

	const workers = 8
	const perWorker = 10000
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(uint64(w)))
			for i := 0; i < perWorker; i++ {
				h.Consume(sampleflow.Scalar(rng.Float64()), nil)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var total uint64
	for _, bin := range h.Get() {
		total += bin.Count
	}
	require.Equal(t, uint64(workers*perWorker), total)
}

func TestHistogramDataDriven(t *testing.T) {
	var h *Histogram
	datadriven.RunTest(t, "testdata/histogram", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "init":
			var minStr, maxStr string
			var bins int
			scheme := Linear
			td.ScanArgs(t, "min", &minStr)
			td.ScanArgs(t, "max", &maxStr)
			td.ScanArgs(t, "bins", &bins)
			if td.HasArg("log") {
				scheme = Logarithmic
			}
			min, err := strconv.ParseFloat(minStr, 64)
			require.NoError(t, err)
			max, err := strconv.ParseFloat(maxStr, 64)
			require.NoError(t, err)
			h, err = NewHistogram(min, max, bins, scheme)
			if err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			return "ok"

		case "consume":
			for _, field := range strings.Fields(td.Input) {
				v, err := strconv.ParseFloat(field, 64)
				require.NoError(t, err)
				h.Consume(sampleflow.Scalar(v), nil)
			}
			return "ok"

		case "get":
			var sb strings.Builder
			for _, bin := range h.Get() {
				fmt.Fprintf(&sb, "[%g, %g) %d\n", bin.Left, bin.Right, bin.Count)
			}
			return sb.String()

		case "gnuplot":
			var buf bytes.Buffer
			require.NoError(t, h.WriteGnuplot(&buf))
			return buf.String()

		default:
			return fmt.Sprintf("unrecognized command %q", td.Cmd)
		}
	})
}

func TestHistogramString(t *testing.T) {
	h, err := NewHistogram(0, 10, 5, Linear)
	require.NoError(t, err)
	h.Consume(3, nil)
	h.Consume(300, nil)
	require.Equal(t, "histogram [0, 10] 5 bins (linear), 1 samples counted", h.String())
}

func TestHistogramBinNumberInRange(t *testing.T) {
	h, err := NewHistogram(0.5, 2, 7, Logarithmic)
	require.NoError(t, err)
	for v := 0.5; v <= 2; v += 1e-3 {
		bin := h.binNumber(v)
		require.GreaterOrEqual(t, bin, 0)
		require.Less(t, bin, 7)
	}
	require.Equal(t, 6, h.binNumber(2))
	require.False(t, math.IsNaN(float64(h.Get()[0].Left)))
}
