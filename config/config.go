// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration that names the target
// distributions, the candidate ansatzes, the artifact layout and the
// figure style, and builds the registries the selector consumes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/qufoundry/bestfit/artifact"
	"github.com/qufoundry/bestfit/bestfit"
	"github.com/qufoundry/bestfit/render"
	"github.com/qufoundry/bestfit/sampler"
)

// Config is the complete bestfit configuration.
type Config struct {
	// Bins is the number of histogram bins used for selection.
	Bins int `yaml:"bins"`

	// Samples is the number of samples drawn per target.
	Samples int `yaml:"samples"`

	// Seed is the base seed. Each distribution derives its own
	// seed from it and its name.
	Seed uint64 `yaml:"seed"`

	// Parallel bounds how many distributions are evaluated at
	// once. Values <= 1 evaluate sequentially.
	Parallel int `yaml:"parallel"`

	// Only is a pair query restricting which (dist, ansatz)
	// pairs are scored. Empty scores every pair.
	Only string `yaml:"only"`

	Store         StoreConfig    `yaml:"store"`
	Distributions []Distribution `yaml:"distributions"`
	Ansatzes      []Ansatz       `yaml:"ansatzes"`
	Plot          render.Style   `yaml:"plot"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// StoreConfig locates the artifact arrays.
type StoreConfig struct {
	Root   string `yaml:"root"`
	Layout string `yaml:"layout"`
}

// Distribution is one target distribution.
type Distribution struct {
	Name string `yaml:"name"`

	// Title is the display name in the figure. It defaults to
	// Name.
	Title string `yaml:"title,omitempty"`

	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Range  []float64          `yaml:"range,omitempty,flow"`

	// Path is the dataset of an empirical distribution. Relative
	// paths are resolved against the configuration file.
	Path string `yaml:"path,omitempty"`
}

// Ansatz is one candidate model variant.
type Ansatz struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `yaml:"level"`
}

// Default returns the configuration of the published analysis: twelve
// distributions and four ansatzes labeled A1 through A4.
func Default() *Config {
	unit := []float64{0, 0.5}
	return &Config{
		Bins:    bestfit.DefaultBins,
		Samples: sampler.DefaultSize,
		Seed:    1,
		Store: StoreConfig{
			Root:   artifact.DefaultRoot,
			Layout: artifact.DefaultLayout,
		},
		Distributions: []Distribution{
			{Name: "Uniform", Kind: "uniform", Params: map[string]float64{"min": 0, "max": 0.5}},
			{Name: "Normal", Kind: "normal", Params: map[string]float64{"mu": 0.25, "sigma": 0.05}, Range: unit},
			{Name: "Left Weibull", Kind: "weibull-left", Params: map[string]float64{"k": 2, "lambda": 0.15}, Range: unit},
			{Name: "Right Weibull", Kind: "weibull", Params: map[string]float64{"k": 2, "lambda": 0.15}, Range: unit},
			dataset("MNIST", "MNIST"),
			dataset("Fashion MNIST", "FashionMNIST"),
			dataset("CIFAR", "CIFAR"),
			dataset("QCHEM", "QCHEM"),
			dataset("Soillow", "soil_low"),
			dataset("Soilhigh", "soil_high"),
			dataset("dmlow", "dm_low"),
			dataset("dmhigh", "dm_high"),
		},
		Ansatzes: []Ansatz{
			{Name: "Sixteen", Label: "A1"},
			{Name: "Five", Label: "A2"},
			{Name: "Custom_One", Label: "A3"},
			{Name: "Custom_Two", Label: "A4"},
		},
		Plot:    render.DefaultStyle(),
		Logging: LoggingConfig{Level: "info"},
	}
}

func dataset(name, file string) Distribution {
	return Distribution{
		Name: name,
		Kind: "empirical",
		Path: filepath.Join("Datasets", file+".npy"),
	}
}

// Load reads the configuration file at path. Settings the file omits
// keep their Default values; a distributions or ansatzes list in the
// file replaces the default list.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.resolve(filepath.Dir(path))
	return c, nil
}

// Parse decodes YAML configuration data over Default.
func Parse(data []byte) (*Config, error) {
	c := Default()
	// Replace rather than merge the default figure titles.
	c.Plot.Titles = nil
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if c.Plot.Titles == nil {
		c.Plot.Titles = render.DefaultStyle().Titles
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolve makes relative dataset and store paths relative to dir.
func (c *Config) resolve(dir string) {
	for i := range c.Distributions {
		d := &c.Distributions[i]
		if d.Path != "" && !filepath.IsAbs(d.Path) {
			d.Path = filepath.Join(dir, d.Path)
		}
	}
	if c.Store.Root != "" && !filepath.IsAbs(c.Store.Root) {
		c.Store.Root = filepath.Join(dir, c.Store.Root)
	}
}

// Validate checks c for errors that can be found without reading any
// data.
func (c *Config) Validate() error {
	var errs []error
	if c.Bins < 1 {
		errs = append(errs, fmt.Errorf("bins must be positive, got %d", c.Bins))
	}
	if c.Samples < 1 {
		errs = append(errs, fmt.Errorf("samples must be positive, got %d", c.Samples))
	}
	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("parallel must be non-negative, got %d", c.Parallel))
	}
	if len(c.Distributions) == 0 {
		errs = append(errs, errors.New("no distributions"))
	}
	if len(c.Ansatzes) == 0 {
		errs = append(errs, errors.New("no ansatzes"))
	}
	seen := make(map[string]bool)
	for i, d := range c.Distributions {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("distribution %d has no name", i))
		} else if seen[d.Name] {
			errs = append(errs, fmt.Errorf("duplicate distribution %q", d.Name))
		}
		seen[d.Name] = true
		if _, err := c.spec(d).Build(); err != nil {
			errs = append(errs, fmt.Errorf("distribution %q: %w", d.Name, err))
		}
	}
	seen = make(map[string]bool)
	for i, a := range c.Ansatzes {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("ansatz %d has no name", i))
		} else if seen[a.Name] {
			errs = append(errs, fmt.Errorf("duplicate ansatz %q", a.Name))
		}
		seen[a.Name] = true
	}
	if _, err := artifact.NewDir(c.Store.Root, c.Store.Layout); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := c.Plot.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("plot: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) spec(d Distribution) sampler.Spec {
	return sampler.Spec{
		Kind:   d.Kind,
		Params: d.Params,
		Range:  d.Range,
		Path:   d.Path,
		Size:   c.Samples,
		Seed:   sampler.SeedFor(c.Seed, d.Name),
	}
}

// Targets builds the target registry in configuration order.
func (c *Config) Targets() (*bestfit.Registry[bestfit.Target], error) {
	r := new(bestfit.Registry[bestfit.Target])
	for _, d := range c.Distributions {
		g, err := c.spec(d).Build()
		if err != nil {
			return nil, fmt.Errorf("distribution %q: %w", d.Name, err)
		}
		if err := r.Add(d.Name, g); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Candidates builds the candidate registry in configuration order.
func (c *Config) Candidates() (*bestfit.Registry[bestfit.Candidate], error) {
	r := new(bestfit.Registry[bestfit.Candidate])
	for _, a := range c.Ansatzes {
		if err := r.Add(a.Name, bestfit.Candidate{Label: a.Label}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AnsatzNames returns the ansatz names in configuration order.
func (c *Config) AnsatzNames() []string {
	names := make([]string, len(c.Ansatzes))
	for i, a := range c.Ansatzes {
		names[i] = a.Name
	}
	return names
}

// DistNames returns the distribution names in configuration order.
func (c *Config) DistNames() []string {
	names := make([]string, len(c.Distributions))
	for i, d := range c.Distributions {
		names[i] = d.Name
	}
	return names
}

// NewStore returns the artifact directory described by c.Store.
func (c *Config) NewStore() (*artifact.Dir, error) {
	return artifact.NewDir(c.Store.Root, c.Store.Layout)
}

// Style returns the figure style, with distribution titles from the
// distributions list taking precedence over plot titles.
func (c *Config) Style() render.Style {
	s := c.Plot
	titles := make(map[string]string, len(s.Titles))
	for k, v := range s.Titles {
		titles[k] = v
	}
	for _, d := range c.Distributions {
		if d.Title != "" {
			titles[d.Name] = d.Title
		}
	}
	s.Titles = titles
	return s
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
