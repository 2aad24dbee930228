// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sampleflow/sampleflow"
	"github.com/sampleflow/sampleflow/consumers"
	"github.com/sampleflow/sampleflow/filters"
	"github.com/sampleflow/sampleflow/producers"
	"github.com/spf13/cobra"
)

var analyzeConfig struct {
	everyNth    int
	component   int
	histMin     float64
	histMax     float64
	histBins    int
	histLog     bool
	maxLag      int
	gnuplotPath string
	plotHeight  int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "compute streaming statistics over a recorded sample sequence",
	Long: `
Reads a sample sequence (one whitespace-separated vector per line) from
a file or stdin and computes the running mean, a histogram of one
component, and the per-lag autocovariance estimate.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(
		&analyzeConfig.everyNth, "every-nth", 1, "keep only every nth sample")
	analyzeCmd.Flags().IntVar(
		&analyzeConfig.component, "component", 0, "sample component to histogram")
	analyzeCmd.Flags().Float64Var(
		&analyzeConfig.histMin, "min", 0, "left edge of the histogram range")
	analyzeCmd.Flags().Float64Var(
		&analyzeConfig.histMax, "max", 1, "right edge of the histogram range")
	analyzeCmd.Flags().IntVar(
		&analyzeConfig.histBins, "bins", 20, "number of histogram bins")
	analyzeCmd.Flags().BoolVar(
		&analyzeConfig.histLog, "log", false, "use logarithmic bin spacing")
	analyzeCmd.Flags().IntVar(
		&analyzeConfig.maxLag, "max-lag", 10, "number of autocovariance lags to track")
	analyzeCmd.Flags().StringVar(
		&analyzeConfig.gnuplotPath, "gnuplot", "", "write the histogram in gnuplot format to this file")
	analyzeCmd.Flags().IntVar(
		&analyzeConfig.plotHeight, "plot-height", 10, "height of the ASCII histogram plot (0 disables)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	scheme := consumers.Linear
	if analyzeConfig.histLog {
		scheme = consumers.Logarithmic
	}
	hist, err := consumers.NewHistogram(
		analyzeConfig.histMin, analyzeConfig.histMax, analyzeConfig.histBins, scheme)
	if err != nil {
		return err
	}
	autocov, err := consumers.NewSpuriousAutocovariance[sampleflow.Vector](analyzeConfig.maxLag)
	if err != nil {
		return err
	}
	thin, err := filters.NewTakeEveryNth[sampleflow.Vector](analyzeConfig.everyNth)
	if err != nil {
		return err
	}
	split, err := filters.NewComponentSplitter(analyzeConfig.component)
	if err != nil {
		return err
	}

	var mean consumers.MeanValue[sampleflow.Vector]
	var componentMean consumers.MeanValue[sampleflow.Scalar]
	var last consumers.LastSample[sampleflow.Vector]

	source := producers.NewStreamReader(input)
	source.Connect(thin)
	thin.Connect(&mean)
	thin.Connect(autocov)
	thin.Connect(&last)
	thin.Connect(split)
	split.Connect(hist)
	split.Connect(&componentMean)

	n, err := source.Run()
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), n, &mean, &componentMean, autocov)
	if analyzeConfig.plotHeight > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n%s\n", hist, hist.Plot(analyzeConfig.plotHeight))
	}

	if analyzeConfig.gnuplotPath != "" {
		f, err := os.Create(analyzeConfig.gnuplotPath)
		if err != nil {
			return err
		}
		if err := hist.WriteGnuplot(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Printf("wrote %s", analyzeConfig.gnuplotPath)
	}
	return nil
}

func printSummary(
	w io.Writer,
	n uint64,
	mean *consumers.MeanValue[sampleflow.Vector],
	componentMean *consumers.MeanValue[sampleflow.Scalar],
	autocov *consumers.SpuriousAutocovariance[sampleflow.Vector],
) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"statistic", "value"})
	table.SetAutoFormatHeaders(false)

	table.Append([]string{"samples", strconv.FormatUint(n, 10)})
	table.Append([]string{"kept after thinning", strconv.FormatUint(mean.Count(), 10)})
	for i, m := range mean.Get() {
		table.Append([]string{
			fmt.Sprintf("mean[%d]", i), strconv.FormatFloat(m, 'g', 6, 64)})
	}
	table.Append([]string{
		fmt.Sprintf("mean of component %d", analyzeConfig.component),
		strconv.FormatFloat(float64(componentMean.Get()), 'g', 6, 64)})
	for i, v := range autocov.Get() {
		table.Append([]string{
			fmt.Sprintf("autocovariance lag %d", i+1),
			strconv.FormatFloat(v, 'g', 6, 64)})
	}
	table.Render()
}
