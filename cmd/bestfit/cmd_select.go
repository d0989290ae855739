// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qufoundry/bestfit/bestfit"
	"github.com/qufoundry/bestfit/internal/logging"
)

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the best-matching ansatz for every distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			tracePath, _ := cmd.Flags().GetString("trace")

			res, selErr := e.selectBest()
			if res == nil {
				return selErr
			}
			if err := writeTrace(tracePath, res); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case e.json:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(res)
			case all:
				err = writeScoreMatrix(out, res, e.candidates)
			default:
				err = writeSelection(out, res, e.candidates)
			}
			if err != nil {
				return err
			}
			return selErr
		},
	}
	cmd.Flags().Bool("all", false, "show the TVD of every scored pair")
	cmd.Flags().String("trace", "", "write one JSON line per scored or skipped pair to `file`")
	return cmd
}

// writeSelection prints one row per distribution.
func writeSelection(w io.Writer, res *bestfit.Results, cands *bestfit.Registry[bestfit.Candidate]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIST\tANSATZ\tLABEL\tTVD\tSCORED\tSKIPPED")
	for _, r := range res.All() {
		ansatz, label := "-", "-"
		if r.Found() {
			ansatz = r.Candidate
			if c, ok := cands.Load(r.Candidate); ok && c.Label != "" {
				label = c.Label
			}
		}
		score := formatTVD(r.Score)
		if r.Err != nil {
			score = "error"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", r.Dist, ansatz, label, score, len(r.Scores), len(r.Skipped))
	}
	return tw.Flush()
}

// writeScoreMatrix prints one row per distribution and one column per
// candidate. The selected candidate's score is starred.
func writeScoreMatrix(w io.Writer, res *bestfit.Results, cands *bestfit.Registry[bestfit.Candidate]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "DIST\t")
	for _, name := range cands.Names() {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)
	for _, r := range res.All() {
		fmt.Fprintf(tw, "%s\t", r.Dist)
		scores := make(map[string]float64, len(r.Scores))
		for _, s := range r.Scores {
			scores[s.Candidate] = s.TVD
		}
		for _, name := range cands.Names() {
			cell := "-"
			if tvd, ok := scores[name]; ok {
				cell = formatTVD(tvd)
				if r.Found() && name == r.Candidate {
					cell += "*"
				}
			}
			fmt.Fprintf(tw, "%s\t", cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func formatTVD(x float64) string {
	if math.IsInf(x, 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(x, 'f', 4, 64)
}

// traceEvent is one line of a --trace file.
type traceEvent struct {
	Dist     string   `json:"dist"`
	Ansatz   string   `json:"ansatz"`
	TVD      *float64 `json:"tvd,omitempty"`
	Mass     *float64 `json:"mass,omitempty"`
	Skipped  string   `json:"skipped,omitempty"`
	Error    string   `json:"error,omitempty"`
	Selected bool     `json:"selected,omitempty"`
}

func writeTrace(path string, res *bestfit.Results) error {
	tr, err := logging.NewTrace(path)
	if err != nil {
		return err
	}
	for _, r := range res.All() {
		for _, s := range r.Scores {
			tvd, mass := s.TVD, s.Mass
			tr.Log(traceEvent{
				Dist: r.Dist, Ansatz: s.Candidate,
				TVD: &tvd, Mass: &mass,
				Selected: r.Found() && s.Candidate == r.Candidate,
			})
		}
		for _, s := range r.Skipped {
			ev := traceEvent{Dist: r.Dist, Ansatz: s.Candidate, Skipped: string(s.Reason)}
			if s.Err != nil {
				ev.Error = s.Err.Error()
			}
			tr.Log(ev)
		}
	}
	return tr.Close()
}
