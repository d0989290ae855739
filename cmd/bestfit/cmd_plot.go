// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qufoundry/bestfit/render"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Select the best ansatzes and draw the comparison figure",
		Long: `plot runs selection and draws one panel per distribution with the
target histogram and the initial and trained histograms of the
selected ansatz. The output format follows the --out extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			style := e.cfg.Style()
			if cmd.Flags().Changed("out") {
				style.Out, _ = cmd.Flags().GetString("out")
			}

			res, selErr := e.selectBest()
			if res == nil {
				return selErr
			}
			err = render.WriteFile(render.Input{
				Results:    res,
				Targets:    e.targets,
				Candidates: e.candidates,
				Store:      e.store,
				Logger:     e.log,
			}, style)
			if err != nil {
				return errors.Join(fmt.Errorf("plotting: %w", err), selErr)
			}
			e.log.Info("wrote figure", "path", style.Out)
			return selErr
		},
	}
	cmd.Flags().String("out", "", "write the figure to `file` (.pdf, .png, .svg, .eps)")
	return cmd
}
