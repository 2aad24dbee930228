// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sampleflow [command] (flags)",
	Short: "streaming sample-sequence analysis tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		analyzeCmd,
		benchCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
