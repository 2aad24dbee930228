// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/consumers"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

var benchConfig struct {
	samples     int
	dim         int
	concurrency int
	maxLag      int
	seed        uint64
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "benchmark estimator update latency on a synthetic stream",
	Long: `
Drives the full consumer set with a synthetic correlated random walk
and reports update throughput and per-sample latency percentiles.
`,
	RunE: runBench,
}

const (
	minLatency = 10 * time.Nanosecond
	maxLatency = 10 * time.Second
)

func init() {
	benchCmd.Flags().IntVarP(
		&benchConfig.samples, "samples", "n", 1_000_000, "number of samples to generate")
	benchCmd.Flags().IntVar(
		&benchConfig.dim, "dim", 2, "sample dimension")
	benchCmd.Flags().IntVarP(
		&benchConfig.concurrency, "concurrency", "c", 1, "number of concurrent producer goroutines")
	benchCmd.Flags().IntVar(
		&benchConfig.maxLag, "max-lag", 10, "number of autocovariance lags to track")
	benchCmd.Flags().Uint64Var(
		&benchConfig.seed, "seed", 1, "random seed")
}

func runBench(cmd *cobra.Command, _ []string) error {
	hist, err := consumers.NewHistogram(-10, 10, 50, consumers.Linear)
	if err != nil {
		return err
	}
	autocov, err := consumers.NewSpuriousAutocovariance[sampleflow.Vector](benchConfig.maxLag)
	if err != nil {
		return err
	}
	var mean consumers.MeanValue[sampleflow.Vector]

	latencies := make([]*hdrhistogram.Histogram, benchConfig.concurrency)
	for i := range latencies {
		latencies[i] = hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 3)
	}

	perWorker := benchConfig.samples / benchConfig.concurrency
	start := time.Now()
	var g errgroup.Group
	for w := 0; w < benchConfig.concurrency; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(benchConfig.seed + uint64(w)))
			// Correlated walk: each sample is a damped copy of the
			// previous one plus Gaussian noise, so the autocovariance
			// estimator has structure to find.
			sample := make(sampleflow.Vector, benchConfig.dim)
			for i := 0; i < perWorker; i++ {
				next := make(sampleflow.Vector, benchConfig.dim)
				for j := range next {
					next[j] = 0.9*sample[j] + rng.NormFloat64()
				}
				sample = next

				begin := time.Now()
				mean.Consume(sample, nil)
				autocov.Consume(sample, nil)
				hist.Consume(sampleflow.Scalar(sample[0]), nil)
				elapsed := clampLatency(time.Since(begin), minLatency, maxLatency)
				if err := latencies[w].RecordValue(elapsed.Nanoseconds()); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	merged := latencies[0]
	for _, h := range latencies[1:] {
		merged.Merge(h)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d samples in %.1fs: %.0f samples/sec\n",
		merged.TotalCount(), elapsed.Seconds(),
		float64(merged.TotalCount())/elapsed.Seconds())
	fmt.Fprintf(out, "update latency p50: %s  p95: %s  p99: %s  max: %s\n",
		time.Duration(merged.ValueAtQuantile(50)),
		time.Duration(merged.ValueAtQuantile(95)),
		time.Duration(merged.ValueAtQuantile(99)),
		time.Duration(merged.Max()))
	fmt.Fprintf(out, "%s\n%s\n", autocov, hist)
	return nil
}

func clampLatency(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
