// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Bestfit picks, for each target distribution, the trained ansatz
// whose samples best reproduce it, and draws the comparison figure.
//
// Usage:
//
//	bestfit select [flags]
//	bestfit plot [flags]
//	bestfit check [flags]
//	bestfit report [flags] [logs...]
//	bestfit version
//
// Without --config, bestfit uses the built-in configuration of the
// published analysis: twelve distributions, four ansatzes and
// artifacts under ./Annealing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bestfit",
		Short: "Select the best-matching ansatz per target distribution",
		Long: `bestfit compares the sample arrays written by training runs against
reference distributions using histogram total variation distance,
and picks the closest ansatz for each distribution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "read configuration from `file` (default: built-in)")
	pf.String("root", "", "artifact root `dir` (overrides store.root)")
	pf.Int("bins", 0, "number of histogram bins (overrides bins)")
	pf.Int("parallel", 0, "evaluate up to `n` distributions at once")
	pf.Uint64("seed", 0, "base seed for target samples (overrides seed)")
	pf.String("only", "", "score only (dist, ansatz) pairs matching `query`")
	pf.Bool("json", false, "write output and logs as JSON")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newSelectCmd(),
		newPlotCmd(),
		newCheckCmd(),
		newReportCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
