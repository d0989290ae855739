// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the comparison figure: one panel per target
// distribution showing the target histogram next to the initial and
// trained histograms of the selected candidate.
//
// Rendering reads selection results but never influences them.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/qufoundry/bestfit/artifact"
	"github.com/qufoundry/bestfit/bestfit"
	"github.com/qufoundry/bestfit/histogram"
)

// Input is the data a figure is drawn from.
type Input struct {
	Results    *bestfit.Results
	Targets    *bestfit.Registry[bestfit.Target]
	Candidates *bestfit.Registry[bestfit.Candidate]

	// Store supplies the trained and initial sample arrays of
	// the selected candidates.
	Store artifact.Store

	// Logger receives a warning for every panel drawn without
	// data. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// errNoData marks a panel with no selected candidate.
var errNoData = errors.New("no candidate selected")

// series is one histogram line of a panel.
type series struct {
	name    string
	samples []float64
	color   color.Color
	width   vg.Length
	dashed  bool
}

// Draw renders the figure described by in and s to w in format,
// which is one of the extensions accepted by Style.Out without the
// leading dot.
func Draw(w io.Writer, format string, in Input, s Style) error {
	if err := s.Validate(); err != nil {
		return err
	}
	log := in.Logger
	if log == nil {
		log = slog.Default()
	}
	edges, err := histogram.Linear(s.XMin, s.XMax, s.Bins)
	if err != nil {
		return err
	}

	order := s.Order
	if len(order) == 0 {
		order = in.Targets.Names()
	}
	rows := s.Rows
	if need := (len(order) + s.Cols - 1) / s.Cols; need > rows {
		rows = need
	}

	fontSize := vg.Points(s.FontSize)
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, s.Cols)
	}
	var legend []plot.Thumbnailer
	for i, dist := range order {
		p := plot.New()
		setFont(p, fontSize)
		lines, err := panel(p, dist, edges, in, &s)
		if err != nil {
			log.Warn("plotting without data", "dist", dist, "err", err)
			noData(p, &s)
		} else if legend == nil {
			legend = lines
		}
		plots[i/s.Cols][i%s.Cols] = p
	}

	c, err := draw.NewFormattedCanvas(vg.Length(s.Width)*vg.Inch, vg.Length(s.Height)*vg.Inch, format)
	if err != nil {
		return err
	}
	dc := draw.New(c)

	// Margins hold the shared axis labels on the left and bottom
	// and the legend on the right.
	margin := 2 * fontSize
	legendW := vg.Length(s.Width) * vg.Inch / 9
	grid := draw.Crop(dc, margin, -legendW, margin, 0)
	tiles := draw.Tiles{
		Rows: rows, Cols: s.Cols,
		PadX: fontSize, PadY: fontSize,
		PadTop: fontSize / 2,
	}
	canvases := plot.Align(plots, tiles, grid)
	for r := range plots {
		for col, p := range plots[r] {
			if p != nil {
				p.Draw(canvases[r][col])
			}
		}
	}

	labelStyle := draw.TextStyle{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, fontSize),
		XAlign:  draw.XCenter,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	dc.FillText(labelStyle, vg.Point{X: (grid.Min.X + grid.Max.X) / 2, Y: dc.Min.Y}, s.XLabel)
	labelStyle.Rotation = math.Pi / 2
	labelStyle.YAlign = draw.YTop
	dc.FillText(labelStyle, vg.Point{X: dc.Min.X, Y: (grid.Min.Y + grid.Max.Y) / 2}, s.YLabel)

	if legend != nil {
		l := plot.NewLegend()
		l.TextStyle.Font.Size = fontSize
		l.Top = true
		l.ThumbnailWidth = 2 * fontSize
		for i, name := range []string{s.TargetName, s.InitialName, s.TrainedName} {
			l.Add(name, legend[i])
		}
		mid := (dc.Min.Y + dc.Max.Y) / 2
		l.Draw(draw.Canvas{Canvas: dc.Canvas, Rectangle: vg.Rectangle{
			Min: vg.Point{X: grid.Max.X, Y: dc.Min.Y},
			Max: vg.Point{X: dc.Max.X - fontSize, Y: mid + 2*fontSize},
		}})
	}

	_, err = c.WriteTo(w)
	return err
}

// WriteFile renders the figure to s.Out, creating its directory.
func WriteFile(in Input, s Style) error {
	f, err := format(s.Out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Out), 0o755); err != nil {
		return err
	}
	out, err := os.Create(s.Out)
	if err != nil {
		return err
	}
	if err := Draw(out, f, in, s); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// panel draws the histograms for dist on p. It returns the target,
// initial and trained lines for use in the legend.
func panel(p *plot.Plot, dist string, edges histogram.Edges, in Input, s *Style) ([]plot.Thumbnailer, error) {
	p.Title.Text = s.Title(dist)
	res, ok := in.Results.Lookup(dist)
	if !ok || !res.Found() {
		return nil, errNoData
	}
	label := res.Candidate
	if cand, ok := in.Candidates.Load(res.Candidate); ok && cand.Label != "" {
		label = cand.Label
	}
	p.Title.Text = fmt.Sprintf("%s (%s)", s.Title(dist), label)

	target, ok := in.Targets.Load(dist)
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q", dist)
	}
	tgt, err := target.Generate()
	if err != nil {
		return nil, err
	}
	initial, err := in.Store.Load(res.Candidate, dist, artifact.Initial)
	if err != nil {
		return nil, err
	}
	trained, err := in.Store.Load(res.Candidate, dist, artifact.Trained)
	if err != nil {
		return nil, err
	}

	targetColor, _ := parseColor(s.TargetColor)
	initialColor, _ := parseColor(s.InitialColor)
	trainedColor, _ := parseColor(s.TrainedColor)
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Dashes = grid.Vertical.Dashes
	p.Add(grid)

	var lines []plot.Thumbnailer
	for _, sr := range []series{
		{s.TargetName, tgt, targetColor, vg.Points(2.8), true},
		{s.InitialName, initial, initialColor, vg.Points(1.8), false},
		{s.TrainedName, trained, trainedColor, vg.Points(1.8), false},
	} {
		h, err := histogram.Project(sr.samples, edges)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sr.name, err)
		}
		l, err := plotter.NewLine(stepXYs(h))
		if err != nil {
			return nil, err
		}
		l.StepStyle = plotter.MidStep
		l.Color = sr.color
		l.Width = sr.width
		if sr.dashed {
			l.Dashes = []vg.Length{vg.Points(8), vg.Points(4)}
		}
		p.Add(l)
		lines = append(lines, l)
	}
	p.X.Min, p.X.Max = s.XMin, s.XMax
	return lines, nil
}

// stepXYs returns the bin centers and densities of h.
func stepXYs(h *histogram.Hist) plotter.XYs {
	centers := h.Edges.Centers()
	xys := make(plotter.XYs, len(centers))
	for i, x := range centers {
		xys[i] = plotter.XY{X: x, Y: h.Density[i]}
	}
	return xys
}

// noData replaces the contents of p with a centered marker.
func noData(p *plot.Plot, s *Style) {
	mid := (s.XMin + s.XMax) / 2
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: mid, Y: 0.5}},
		Labels: []string{"no data"},
	})
	if err == nil {
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
			labels.TextStyle[i].Font.Size = vg.Points(s.FontSize)
		}
		p.Add(labels)
	}
	p.X.Min, p.X.Max = s.XMin, s.XMax
	p.Y.Min, p.Y.Max = 0, 1
	p.HideAxes()
}

func setFont(p *plot.Plot, size vg.Length) {
	p.Title.TextStyle.Font.Size = size
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = size
		ax.Tick.Label.Font.Size = size * 3 / 4
	}
}
