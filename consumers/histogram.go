// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package consumers

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/guptarohit/asciigraph"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/internal/invariants"
)

// SubdivisionScheme describes how the range of a Histogram is split
// into bins.
type SubdivisionScheme int8

const (
	// Linear splits the range min..max into equal-sized bins.
	Linear SubdivisionScheme = iota
	// Logarithmic splits log(min)..log(max) into equal-sized intervals,
	// so that for every bin the ratio of the right to the left edge is
	// the same. Requires min > 0.
	Logarithmic
)

// String implements fmt.Stringer.
func (s SubdivisionScheme) String() string {
	switch s {
	case Linear:
		return "linear"
	case Logarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("SubdivisionScheme(%d)", int8(s))
	}
}

// Bin is one sub-interval of a histogram's range together with the
// number of samples that fell into it.
type Bin struct {
	Left  float64
	Right float64
	Count uint64
}

// Histogram counts scalar samples into a fixed number of bins spanning
// the range [min, max]. Samples outside the range are deliberately
// discarded, not counted anywhere: sample streams routinely wander
// outside an analysis window and that must not be an error.
//
// Histogram consumes sampleflow.Scalar; vector-valued streams must be
// projected first, e.g. with filters.ComponentSplitter.
type Histogram struct {
	min    float64
	max    float64
	nBins  int
	scheme SubdivisionScheme

	mu struct {
		sync.Mutex
		bins []uint64
	}
}

var _ sampleflow.Consumer[sampleflow.Scalar] = (*Histogram)(nil)

// NewHistogram returns a histogram over [min, max] with nSubdivisions
// bins. It errs if nSubdivisions < 1, if min >= max, or if the
// logarithmic scheme is combined with min <= 0; a rejected
// configuration never produces a usable estimator.
func NewHistogram(
	min, max float64, nSubdivisions int, scheme SubdivisionScheme,
) (*Histogram, error) {
	if nSubdivisions < 1 {
		return nil, errors.Errorf("histogram: nSubdivisions must be at least 1 (got %d)", nSubdivisions)
	}
	if min >= max {
		return nil, errors.Errorf("histogram: empty range [%g, %g]", min, max)
	}
	if scheme == Logarithmic && min <= 0 {
		return nil, errors.Errorf("histogram: logarithmic subdivision requires min > 0 (got %g)", min)
	}
	h := &Histogram{min: min, max: max, nBins: nSubdivisions, scheme: scheme}
	h.mu.bins = make([]uint64, nSubdivisions)
	return h, nil
}

// Consume counts one sample into its bin. Samples outside [min, max]
// are dropped.
func (h *Histogram) Consume(sample sampleflow.Scalar, _ sampleflow.AuxiliaryData) {
	v := float64(sample)
	if v < h.min || v > h.max {
		return
	}
	bin := h.binNumber(v)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.mu.bins[bin]++
}

// binNumber maps an in-range value to a bin index in [0, nBins). The
// index is clamped so that floating-point edge effects at v == max (or
// log-space rounding) cannot produce an out-of-range bin.
func (h *Histogram) binNumber(v float64) int {
	lo, hi := h.min, h.max
	if h.scheme == Logarithmic {
		v, lo, hi = math.Log(v), math.Log(h.min), math.Log(h.max)
	}
	bin := int((v - lo) / ((hi - lo) / float64(h.nBins)))
	if bin < 0 {
		bin = 0
	}
	if bin >= h.nBins {
		bin = h.nBins - 1
	}
	invariants.CheckBounds(bin, h.nBins)
	return bin
}

// binEdges returns the edges of the i'th bin. Edges are recomputed from
// the configuration rather than stored, so the edges of a given
// configuration can never drift from the counts.
func (h *Histogram) binEdges(i int) (left, right float64) {
	switch h.scheme {
	case Logarithmic:
		logMin, logMax := math.Log(h.min), math.Log(h.max)
		width := (logMax - logMin) / float64(h.nBins)
		return math.Exp(logMin + float64(i)*width), math.Exp(logMin + float64(i+1)*width)
	default:
		width := (h.max - h.min) / float64(h.nBins)
		return h.min + float64(i)*width, h.min + float64(i+1)*width
	}
}

// Get returns one Bin per subdivision, in order. The counts are read in
// a single critical section, so the returned slice reflects one
// consistent instant relative to concurrent updates; it is an
// independent copy that later updates do not modify.
func (h *Histogram) Get() []Bin {
	result := make([]Bin, h.nBins)
	for i := range result {
		result[i].Left, result[i].Right = h.binEdges(i)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range result {
		result[i].Count = h.mu.bins[i]
	}
	return result
}

// WriteGnuplot writes the histogram in a form that a line-plotting tool
// such as gnuplot renders as boxes: for each bin the three visible
// sides of a rectangle over the x axis, followed by a blank separator
// line.
func (h *Histogram) WriteGnuplot(w io.Writer) error {
	for _, bin := range h.Get() {
		if _, err := fmt.Fprintf(w, "%g %d\n%g %d\n%g %d\n%g %d\n\n",
			bin.Left, 0, bin.Left, bin.Count, bin.Right, bin.Count, bin.Right, 0); err != nil {
			return err
		}
	}
	return nil
}

// Plot returns an ASCII graph of the bin counts, with the provided
// height determining the number of representable discrete y points.
func (h *Histogram) Plot(height int) string {
	bins := h.Get()
	values := make([]float64, len(bins))
	for i := range bins {
		values[i] = float64(bins[i].Count)
	}
	return asciigraph.Plot(values, asciigraph.Height(height))
}

// String implements fmt.Stringer.
func (h *Histogram) String() string {
	return redact.StringWithoutMarkers(h)
}

// SafeFormat implements redact.SafeFormatter.
func (h *Histogram) SafeFormat(w redact.SafePrinter, _ rune) {
	var total uint64
	h.mu.Lock()
	for _, c := range h.mu.bins {
		total += c
	}
	h.mu.Unlock()
	w.Printf("histogram [%v, %v] %v bins (%v), %v samples counted",
		redact.SafeFloat(h.min), redact.SafeFloat(h.max),
		redact.SafeInt(int64(h.nBins)), redact.SafeString(h.scheme.String()),
		redact.SafeUint(total))
}
