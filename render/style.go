// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"
)

// Style holds every presentation setting of the comparison figure.
// None of it affects selection.
type Style struct {
	// Order lists the distributions to draw, row by row. If
	// empty, every target is drawn in registry order.
	Order []string `yaml:"order"`

	// Titles maps distribution names to display names.
	// Distributions without an entry are titled by name.
	Titles map[string]string `yaml:"titles"`

	// Rows and Cols give the panel grid. Rows grows as needed to
	// fit every distribution.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// XMin and XMax are the fixed histogram range shared by
	// every panel, split into Bins bins.
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	Bins int     `yaml:"bins"`

	// Width and Height are the figure size in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// FontSize is the size of all text, in points.
	FontSize float64 `yaml:"font_size"`

	// Colors are "#rrggbb", "#rgb" or "black".
	TargetColor  string `yaml:"target_color"`
	InitialColor string `yaml:"initial_color"`
	TrainedColor string `yaml:"trained_color"`

	// Legend names for the three series.
	TargetName  string `yaml:"target_name"`
	InitialName string `yaml:"initial_name"`
	TrainedName string `yaml:"trained_name"`

	XLabel string `yaml:"xlabel"`
	YLabel string `yaml:"ylabel"`

	// Out is the output file. Its extension selects the format:
	// .pdf, .png, .svg, .eps, .jpg or .tiff.
	Out string `yaml:"out"`
}

// DefaultStyle returns the figure style used for the published
// comparison grid.
func DefaultStyle() Style {
	return Style{
		Order: []string{
			"Uniform", "Normal", "Left Weibull", "Right Weibull",
			"MNIST", "Fashion MNIST", "CIFAR", "QCHEM",
			"Soillow", "Soilhigh", "dmlow", "dmhigh",
		},
		Titles: map[string]string{
			"Soillow":  "Soil Low",
			"Soilhigh": "Soil High",
			"dmlow":    "DM Low",
			"dmhigh":   "DM High",
		},
		Rows:         3,
		Cols:         4,
		XMin:         0,
		XMax:         0.6,
		Bins:         20,
		Width:        24,
		Height:       15.3,
		FontSize:     22,
		TargetColor:  "black",
		InitialColor: "#4ae6cd",
		TrainedColor: "#1d4670",
		TargetName:   "Target",
		InitialName:  "Initial",
		TrainedName:  "QuFoundry",
		XLabel:       "Concentratable Entanglement",
		YLabel:       "Density",
		Out:          filepath.Join("Results", "combined_distributions.pdf"),
	}
}

// Validate checks that s describes a drawable figure.
func (s *Style) Validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("plot grid %dx%d must be at least 1x1", s.Rows, s.Cols)
	}
	if !(s.XMin < s.XMax) {
		return fmt.Errorf("plot range [%v, %v] is empty", s.XMin, s.XMax)
	}
	if s.Bins < 1 {
		return fmt.Errorf("plot bins %d must be positive", s.Bins)
	}
	if !(s.Width > 0) || !(s.Height > 0) || !(s.FontSize > 0) {
		return fmt.Errorf("plot size %vx%v in at %vpt must be positive", s.Width, s.Height, s.FontSize)
	}
	for _, c := range []string{s.TargetColor, s.InitialColor, s.TrainedColor} {
		if _, err := parseColor(c); err != nil {
			return err
		}
	}
	if _, err := format(s.Out); err != nil {
		return err
	}
	return nil
}

// Title returns the display name of dist.
func (s *Style) Title(dist string) string {
	if t, ok := s.Titles[dist]; ok {
		return t
	}
	return dist
}

// format returns the canvas format for the extension of path.
func format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "pdf", "png", "svg", "eps", "jpg", "jpeg", "tif", "tiff":
		return ext, nil
	}
	return "", fmt.Errorf("unsupported plot format %q for %s", ext, path)
}

var namedColors = map[string]color.Color{
	"black": color.Black,
	"white": color.White,
}

func parseColor(s string) (color.Color, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return nil, fmt.Errorf("bad color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
