// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/qufoundry/bestfit/artifact"
	"github.com/qufoundry/bestfit/bestfit"
	"github.com/qufoundry/bestfit/config"
	"github.com/qufoundry/bestfit/internal/logging"
	"github.com/qufoundry/bestfit/pairquery"
)

// env is the state shared by every command: the effective
// configuration and everything built from it.
type env struct {
	cfg        *config.Config
	log        *slog.Logger
	targets    *bestfit.Registry[bestfit.Target]
	candidates *bestfit.Registry[bestfit.Candidate]
	store      *artifact.Dir
	filter     *pairquery.Filter
	json       bool
}

// loadEnv reads the configuration, applies command-line overrides and
// builds the registries and store.
func loadEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()
	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if flags.Changed("root") {
		cfg.Store.Root, _ = flags.GetString("root")
	}
	if flags.Changed("bins") {
		cfg.Bins, _ = flags.GetInt("bins")
	}
	if flags.Changed("parallel") {
		cfg.Parallel, _ = flags.GetInt("parallel")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("only") {
		cfg.Only, _ = flags.GetString("only")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	e.json, _ = flags.GetBool("json")
	if e.json {
		e.log = logging.NewJSONLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	} else {
		e.log = logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	}

	var err error
	if e.targets, err = cfg.Targets(); err != nil {
		return nil, err
	}
	if e.candidates, err = cfg.Candidates(); err != nil {
		return nil, err
	}
	if e.store, err = cfg.NewStore(); err != nil {
		return nil, err
	}
	if cfg.Only != "" {
		if e.filter, err = pairquery.NewFilter(cfg.Only); err != nil {
			return nil, fmt.Errorf("--only: %w", err)
		}
	}
	return e, nil
}

// selectBest runs selection over the trained artifacts. The returned
// Results are complete even when err reports failed distributions.
func (e *env) selectBest() (*bestfit.Results, error) {
	opts := bestfit.Options{
		Bins:     e.cfg.Bins,
		Parallel: e.cfg.Parallel,
		Logger:   e.log,
	}
	if e.filter != nil {
		opts.Pair = e.filter.Match
	}
	loader := artifact.KindLoader{Store: e.store, Kind: artifact.Trained}
	return bestfit.Select(e.targets, e.candidates, loader, opts)
}
