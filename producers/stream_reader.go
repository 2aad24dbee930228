// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package producers implements sample sources that drive the consumers
// in this module. Generating samples (for example by running a Markov
// chain) is outside this module's scope; the producers here replay
// already-generated sequences.
package producers

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sampleflow/sampleflow"
)

// StreamReader replays a sample sequence from a text stream: one sample
// per line, elements separated by whitespace, blank lines skipped. The
// format matches what consumers.StreamOutput writes, so a recorded
// stream can be re-analyzed later.
type StreamReader struct {
	sampleflow.Producer[sampleflow.Vector]
	r io.Reader
}

// NewStreamReader returns a producer replaying samples from r.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

// Run parses the stream and emits every sample to the connected
// consumers. It returns the number of samples emitted, and an error if
// a line fails to parse or if the sample dimension changes mid-stream.
func (p *StreamReader) Run() (uint64, error) {
	var count uint64
	dim := -1
	scanner := bufio.NewScanner(p.r)
	for lineno := 1; scanner.Scan(); lineno++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if dim == -1 {
			dim = len(fields)
		} else if len(fields) != dim {
			return count, errors.Errorf(
				"line %d: sample has %d elements, stream dimension is %d",
				lineno, len(fields), dim)
		}
		sample := make(sampleflow.Vector, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return count, errors.Wrapf(err, "line %d", lineno)
			}
			sample[i] = v
		}
		p.Emit(sample, nil)
		count++
	}
	return count, scanner.Err()
}
