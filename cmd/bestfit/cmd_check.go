// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qufoundry/bestfit/artifact"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List missing trained and initial artifacts",
		Long: `check reports every (ansatz, distribution) pair whose trained or
initial sample array is missing. It exits with status 1 if any are
missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			missing, err := artifact.Missing(e.store, e.cfg.AnsatzNames(), e.cfg.DistNames(), artifact.Trained, artifact.Initial)
			if err != nil {
				return err
			}
			if e.filter != nil {
				kept := missing[:0]
				for _, m := range missing {
					if e.filter.Match(m.Dist, m.Ansatz) {
						kept = append(kept, m)
					}
				}
				missing = kept
			}

			type jsonMissing struct {
				Ansatz string `json:"ansatz"`
				Dist   string `json:"dist"`
				Kind   string `json:"kind"`
				Path   string `json:"path"`
			}
			out := cmd.OutOrStdout()
			if e.json {
				list := []jsonMissing{}
				for _, m := range missing {
					list = append(list, jsonMissing{m.Ansatz, m.Dist, m.Kind.String(), e.store.Path(m.Ansatz, m.Dist, m.Kind)})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(list); err != nil {
					return err
				}
			} else {
				for _, m := range missing {
					fmt.Fprintf(out, "missing %s\n", e.store.Path(m.Ansatz, m.Dist, m.Kind))
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d artifacts missing", len(missing))
			}
			return nil
		},
	}
}
