// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qufoundry/bestfit/bestfit"
	"github.com/qufoundry/bestfit/internal/units"
	"github.com/qufoundry/bestfit/runlog"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [logs...]",
		Short: "Show training-log costs next to recomputed distances",
		Long: `report reads the text summaries written by training runs and prints
each run's reported final cost and training time next to the TVD
recomputed from its sample array. The reported costs are not used for
selection.

Without arguments, report reads every file under the artifact root
matching --glob. The path "-" reads standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				pattern, _ := cmd.Flags().GetString("glob")
				if paths, err = runlog.Glob(e.store.Root, pattern); err != nil {
					return err
				}
				if len(paths) == 0 {
					return fmt.Errorf("no run logs matching %s under %s", pattern, e.store.Root)
				}
			}

			res, selErr := e.selectBest()
			if res == nil {
				return selErr
			}

			type row struct {
				Ansatz       string   `json:"ansatz"`
				Dist         string   `json:"dist"`
				FinalCost    float64  `json:"final_cost"`
				TrainingTime float64  `json:"training_time"`
				TVD          *float64 `json:"tvd"`
				Best         bool     `json:"best"`
				File         string   `json:"file"`
			}
			var rows []row
			files := &runlog.Files{Paths: paths, AllowStdin: true}
			for files.Scan() {
				rec, err := files.Record()
				if err != nil {
					e.log.Warn("skipping run log", "err", err)
					continue
				}
				r := row{
					Ansatz:       rec.Ansatz,
					Dist:         rec.Dist,
					FinalCost:    rec.FinalCost,
					TrainingTime: rec.TrainingTime,
					File:         rec.File,
				}
				if tvd, best, ok := lookupScore(res, rec.Dist, rec.Ansatz); ok {
					r.TVD, r.Best = &tvd, best
				}
				rows = append(rows, r)
			}
			if err := files.Err(); err != nil {
				return errors.Join(err, selErr)
			}

			out := cmd.OutOrStdout()
			if e.json {
				if rows == nil {
					rows = []row{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return err
				}
				return selErr
			}
			// Each numeric column shares one SI scale.
			var costs, tvds []float64
			for _, r := range rows {
				costs = append(costs, r.FinalCost)
				if r.TVD != nil {
					tvds = append(tvds, *r.TVD)
				}
			}
			costScale, tvdScale := units.CommonScale(costs), units.CommonScale(tvds)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ANSATZ\tDIST\tFINAL COST\tTRAINING TIME\tTVD\tBEST")
			for _, r := range rows {
				tvd, best := "-", ""
				if r.TVD != nil {
					tvd = tvdScale.Format(*r.TVD)
				}
				if r.Best {
					best = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%ss\t%s\t%s\n", r.Ansatz, r.Dist,
					costScale.Format(r.FinalCost), units.Scale(r.TrainingTime),
					tvd, best)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return selErr
		},
	}
	cmd.Flags().String("glob", runlog.DefaultPattern, "find logs under the artifact root matching `pattern`")
	return cmd
}

// lookupScore returns the recomputed TVD of (dist, ansatz) and
// whether it was the selected candidate.
func lookupScore(res *bestfit.Results, dist, ansatz string) (tvd float64, best, ok bool) {
	r, ok := res.Lookup(dist)
	if !ok {
		return math.NaN(), false, false
	}
	for _, s := range r.Scores {
		if s.Candidate == ansatz {
			return s.TVD, r.Candidate == ansatz, true
		}
	}
	return math.NaN(), false, false
}
